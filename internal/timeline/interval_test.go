package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2025, time.March, 10, h, m, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{
			name:     "Partial overlap",
			a:        Interval{at(8, 0), at(12, 0)},
			b:        Interval{at(10, 0), at(14, 0)},
			expected: true,
		},
		{
			name:     "Contained",
			a:        Interval{at(8, 0), at(16, 0)},
			b:        Interval{at(10, 0), at(11, 0)},
			expected: true,
		},
		{
			name:     "Touching is not overlapping",
			a:        Interval{at(8, 0), at(12, 0)},
			b:        Interval{at(12, 0), at(14, 0)},
			expected: false,
		},
		{
			name:     "Disjoint",
			a:        Interval{at(8, 0), at(9, 0)},
			b:        Interval{at(10, 0), at(11, 0)},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.expected, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestIntervalIntersect(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Interval
		expected time.Duration
	}{
		{
			name:     "Partial overlap",
			a:        Interval{at(8, 0), at(12, 0)},
			b:        Interval{at(10, 0), at(14, 0)},
			expected: 2 * time.Hour,
		},
		{
			name:     "Contained stoppage",
			a:        Interval{at(7, 0), at(15, 0)},
			b:        Interval{at(10, 0), at(11, 0)},
			expected: time.Hour,
		},
		{
			name:     "Disjoint",
			a:        Interval{at(8, 0), at(9, 0)},
			b:        Interval{at(10, 0), at(11, 0)},
			expected: 0,
		},
		{
			name:     "Identical",
			a:        Interval{at(8, 0), at(9, 30)},
			b:        Interval{at(8, 0), at(9, 30)},
			expected: 90 * time.Minute,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Intersect(tc.b))
			assert.Equal(t, tc.expected, tc.b.Intersect(tc.a), "intersection must be symmetric")
		})
	}
}

func TestIntervalClip(t *testing.T) {
	window := Interval{at(7, 0), at(15, 0)}

	clipped, ok := Interval{at(6, 0), at(10, 0)}.Clip(window)
	assert.True(t, ok)
	assert.Equal(t, Interval{at(7, 0), at(10, 0)}, clipped)

	clipped, ok = Interval{at(8, 0), at(18, 0)}.Clip(window)
	assert.True(t, ok)
	assert.Equal(t, Interval{at(8, 0), at(15, 0)}, clipped)

	inside := Interval{at(9, 0), at(10, 0)}
	clipped, ok = inside.Clip(window)
	assert.True(t, ok)
	assert.Equal(t, inside, clipped)

	_, ok = Interval{at(16, 0), at(18, 0)}.Clip(window)
	assert.False(t, ok, "disjoint interval must not clip")
}

func TestIntervalValid(t *testing.T) {
	assert.True(t, Interval{at(8, 0), at(9, 0)}.Valid())
	assert.True(t, Interval{at(8, 0), at(8, 0)}.Valid(), "zero length is well-formed")
	assert.False(t, Interval{at(9, 0), at(8, 0)}.Valid())
}

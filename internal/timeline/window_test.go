package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productionSpecs() []WindowSpec {
	return []WindowSpec{
		{Period: 1, Start: "07:00", End: "15:00"},
		{Period: 2, Start: "15:00", End: "23:00"},
		{Period: 3, Start: "23:00", End: "07:00"},
	}
}

func newTestTable(t *testing.T) WindowTable {
	t.Helper()
	table, err := NewWindowTable(time.UTC, "07:00", productionSpecs())
	require.NoError(t, err)
	return table
}

func TestNewWindowTableValidation(t *testing.T) {
	testCases := []struct {
		name     string
		dayStart string
		specs    []WindowSpec
	}{
		{
			name:     "Missing period",
			dayStart: "07:00",
			specs:    productionSpecs()[:2],
		},
		{
			name:     "Duplicate period",
			dayStart: "07:00",
			specs:    append(productionSpecs(), WindowSpec{Period: 1, Start: "01:00", End: "02:00"}),
		},
		{
			name:     "Unknown period",
			dayStart: "07:00",
			specs:    append(productionSpecs()[:2], WindowSpec{Period: 9, Start: "23:00", End: "07:00"}),
		},
		{
			name:     "Bad clock time",
			dayStart: "07:00",
			specs:    append(productionSpecs()[:2], WindowSpec{Period: 3, Start: "25:00", End: "07:00"}),
		},
		{
			name:     "Bad day start",
			dayStart: "7am",
			specs:    productionSpecs(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWindowTable(time.UTC, tc.dayStart, tc.specs)
			assert.Error(t, err)
		})
	}

	_, err := NewWindowTable(nil, "07:00", productionSpecs())
	assert.Error(t, err, "a time zone is required")
}

func TestOperatingDay(t *testing.T) {
	table := newTestTable(t)

	day := table.OperatingDay(time.Date(2025, time.March, 10, 12, 34, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.March, 10, 7, 0, 0, 0, time.UTC), day.Start)
	assert.Equal(t, time.Date(2025, time.March, 11, 7, 0, 0, 0, time.UTC), day.End)
	assert.Equal(t, 24*time.Hour, day.Duration())
}

func TestResolveWindows(t *testing.T) {
	table := newTestTable(t)
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	first := table.Resolve(PeriodFirst, date)
	assert.Equal(t, at(7, 0), first.Start)
	assert.Equal(t, at(15, 0), first.End)

	second := table.Resolve(PeriodSecond, date)
	assert.Equal(t, at(15, 0), second.Start)
	assert.Equal(t, at(23, 0), second.End)

	// The third window wraps past midnight onto the next calendar day.
	third := table.Resolve(PeriodThird, date)
	assert.Equal(t, at(23, 0), third.Start)
	assert.Equal(t, time.Date(2025, time.March, 11, 7, 0, 0, 0, time.UTC), third.End)
	assert.Equal(t, 8*time.Hour, third.Duration())
}

func TestParsePeriod(t *testing.T) {
	for n, expected := range map[int]Period{1: PeriodFirst, 2: PeriodSecond, 3: PeriodThird} {
		p, ok := ParsePeriod(n)
		assert.True(t, ok)
		assert.Equal(t, expected, p)
	}

	for _, n := range []int{0, -1, 4, 99} {
		_, ok := ParsePeriod(n)
		assert.False(t, ok)
	}
}

package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var regRe = regexp.MustCompile(`^([A-Z]{2,10})[-\s]?0*(\d{1,5})$`)

// Registration holds the structured data parsed from a vehicle's fleet
// registration, e.g. "CAM-042" -> kind CAM, number 42.
type Registration struct {
	Kind   string
	Number int
}

// ParseRegistration extracts the fleet kind prefix and unit number from
// a raw registration string. Case and zero-padding are normalized so
// "cam 42", "CAM-042" and "CAM42" all refer to the same vehicle.
func ParseRegistration(raw string) (Registration, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	m := regRe.FindStringSubmatch(s)
	if m == nil {
		return Registration{}, fmt.Errorf("unable to parse registration: %q", raw)
	}

	n, err := strconv.Atoi(m[2])
	if err != nil || n == 0 {
		return Registration{}, fmt.Errorf("invalid unit number in registration: %q", raw)
	}

	return Registration{Kind: m[1], Number: n}, nil
}

// Canonical returns the normalized registration string, zero-padded to
// three digits.
func (r Registration) Canonical() string {
	return fmt.Sprintf("%s-%03d", r.Kind, r.Number)
}

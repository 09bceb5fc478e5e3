package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts a GTFS "H:MM:SS" / "HH:MM:SS" time into seconds since
// service-day midnight. Hours may exceed 23 for trips running past midnight.
func ParseClock(s string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	var v [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
		}
		v[i] = n
	}
	if v[1] > 59 || v[2] > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	return v[0]*3600 + v[1]*60 + v[2], nil
}

// FormatClock renders seconds since service-day midnight as "HH:MM:SS".
// Negative values (before midnight of the service day) are prefixed with '-'.
func FormatClock(t int64) string {
	sign := ""
	if t < 0 {
		sign = "-"
		t = -t
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, t/3600, (t/60)%60, t%60)
}

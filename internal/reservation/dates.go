package reservation

import (
	"fmt"
	"time"
)

// ExpandStay expands a check-in/check-out pair into the ordered, inclusive
// sequence of calendar dates the stay occupies. A single-day stay yields a
// one-element sequence. checkOut must not precede checkIn.
func ExpandStay(checkIn, checkOut string) ([]string, error) {
	in, err := time.ParseInLocation(DateLayout, checkIn, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("check-in date: %w", err)
	}
	out, err := time.ParseInLocation(DateLayout, checkOut, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("check-out date: %w", err)
	}
	if out.Before(in) {
		return nil, fmt.Errorf("check-out date %s precedes check-in date %s", checkOut, checkIn)
	}

	n := diffDays(in, out) + 1
	dates := make([]string, 0, n)
	for d := in; !d.After(out); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

package reservation

import (
	"regexp"
	"time"
)

var (
	emailRe = regexp.MustCompile(`\w+@\w+\.\w+`)
	dateRe  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// ValidateEmail reports whether v contains word characters, an "@",
// more word characters, a dot and more word characters.
func ValidateEmail(v string) bool {
	if v == "" {
		return false
	}
	return emailRe.MatchString(v)
}

// ValidateName accepts any non-empty string except the literal " ".
// Arbitrary whitespace-only strings pass; the narrow check is intentional.
func ValidateName(v string) bool {
	if v == "" {
		return false
	}
	return v != " "
}

// ValidatePartySize reports whether v is nonzero and within [min, max].
func ValidatePartySize(v, min, max int) bool {
	if v == 0 {
		return false
	}
	return v >= min && v <= max
}

// ValidateDate reports whether v is a strictly formatted YYYY-MM-DD string
// naming a real calendar date that is not before today. today is compared
// at date precision.
func ValidateDate(v string, today time.Time) bool {
	if v == "" || !dateRe.MatchString(v) {
		return false
	}
	d, err := time.ParseInLocation(DateLayout, v, time.UTC)
	if err != nil {
		return false
	}
	return !d.Before(truncateToDay(today))
}

// ValidateStayLength reports whether the inclusive span between checkIn
// and checkOut covers between min and max days. It does not require
// checkOut >= checkIn; a negative span simply fails the minimum bound.
func ValidateStayLength(checkIn, checkOut string, min, max int) bool {
	in, err := time.ParseInLocation(DateLayout, checkIn, time.UTC)
	if err != nil {
		return false
	}
	out, err := time.ParseInLocation(DateLayout, checkOut, time.UTC)
	if err != nil {
		return false
	}
	days := diffDays(in, out) + 1
	return days >= min && days <= max
}

func diffDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

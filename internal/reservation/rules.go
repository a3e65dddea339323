package reservation

import (
	"time"

	"github.com/lightningnetwork/lnd/clock"
)

// Default booking bounds. All of them can be overridden through config.
const (
	DefaultMinPartySize = 1
	DefaultMaxPartySize = 3
	DefaultMinStayDays  = 1
	DefaultMaxStayDays  = 3
)

// Rules gates a raw booking request before any store access.
type Rules struct {
	MinPartySize int
	MaxPartySize int
	MinStayDays  int
	MaxStayDays  int

	// Clock supplies "today" for the past-date check.
	Clock clock.Clock
}

func DefaultRules() Rules {
	return Rules{
		MinPartySize: DefaultMinPartySize,
		MaxPartySize: DefaultMaxPartySize,
		MinStayDays:  DefaultMinStayDays,
		MaxStayDays:  DefaultMaxStayDays,
		Clock:        clock.NewDefaultClock(),
	}
}

func (r Rules) today() time.Time {
	now := time.Now()
	if r.Clock != nil {
		now = r.Clock.Now()
	}
	return truncateToDay(now.UTC())
}

// ValidateRequest runs the five field validators and then the day-count
// rule. Field failures come back as a *ValidationError with a single
// field-agnostic message; a bad span comes back as a *StayLengthError.
func (r Rules) ValidateRequest(req BookingRequest) error {
	today := r.today()
	fieldsOK := ValidateEmail(req.Email) &&
		ValidateName(req.FirstName) &&
		ValidateName(req.LastName) &&
		ValidatePartySize(req.NumberOfPeople, r.MinPartySize, r.MaxPartySize) &&
		ValidateDate(req.CheckInDate, today) &&
		ValidateDate(req.CheckOutDate, today)
	if !fieldsOK {
		return &ValidationError{Request: req}
	}

	if !ValidateStayLength(req.CheckInDate, req.CheckOutDate, r.MinStayDays, r.MaxStayDays) {
		return &StayLengthError{Request: req, Min: r.MinStayDays, Max: r.MaxStayDays}
	}
	return nil
}

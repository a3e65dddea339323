package reservation

import "fmt"

// DateLayout is the wire format for every calendar date in the system.
const DateLayout = "2006-01-02"

// IDLength is the exact length of a store-assigned reservation id
// (12 bytes, hex-encoded).
const IDLength = 24

// BookingRequest is the raw client payload for a new reservation.
type BookingRequest struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	NumberOfPeople int    `json:"numberOfPeople"`
	CheckInDate    string `json:"checkInDate"`
	CheckOutDate   string `json:"checkOutDate"`
}

// Reservation is a persisted booking. Dates is the full expanded stay,
// ordered, one entry per calendar day, first entry check-in and last
// entry check-out. A reservation is never mutated after creation.
type Reservation struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	NumberOfPeople int      `json:"numberOfPeople"`
	Dates          []string `json:"dates"`
}

// Summary renders the human-readable confirmation line for a reservation.
// Both ends of the stay are always reported, equal for a single-day stay.
func (r Reservation) Summary() string {
	first, last := "", ""
	if len(r.Dates) > 0 {
		first = r.Dates[0]
		last = r.Dates[len(r.Dates)-1]
	}
	return fmt.Sprintf("Reservation number: %s, Name: %s %s, Number of people: %d, Dates: %s to %s.",
		r.ID, r.FirstName, r.LastName, r.NumberOfPeople, first, last)
}

// ValidateID reports whether id has the exact shape of a store-assigned
// identifier. Anything with a different length is rejected before the
// store is ever consulted.
func ValidateID(id string) bool {
	return len(id) == IDLength
}

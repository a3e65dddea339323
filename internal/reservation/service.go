package reservation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Store is the persistence collaborator the service drives. A nil
// *Reservation with a nil error means "no match". Insert must reject a
// reservation sharing any date with an existing one atomically, returning
// ErrDatesUnavailable, so that two concurrent bookings for overlapping
// dates cannot both land.
type Store interface {
	FindOverlap(ctx context.Context, dates []string) (*Reservation, error)
	Insert(ctx context.Context, res Reservation) (string, error)
	FindByID(ctx context.Context, id string) (*Reservation, error)

	// DeleteByID removes by id, additionally matching ownerEmail when it
	// is non-empty, and reports the number of rows removed (0 or 1).
	DeleteByID(ctx context.Context, id, ownerEmail string) (int64, error)
}

// Service orchestrates validate, expand, availability check and persist.
// The store is injected; the service holds no other state.
type Service struct {
	store Store
	rules Rules
	log   *slog.Logger
}

func NewService(store Store, rules Rules, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, rules: rules, log: log}
}

func (s *Service) Rules() Rules { return s.rules }

// Book validates req, expands the stay, checks availability and persists
// a new reservation with normalized fields, returning the assigned id.
// An overlap found either by the pre-check or by the store at insert time
// is ErrDatesUnavailable; the whole request is rejected, never a subset.
func (s *Service) Book(ctx context.Context, req BookingRequest) (string, error) {
	if err := s.rules.ValidateRequest(req); err != nil {
		return "", err
	}

	dates, err := ExpandStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		// Unreachable after validation, but kept as a hard stop.
		return "", &ValidationError{Request: req}
	}

	existing, err := s.store.FindOverlap(ctx, dates)
	if err != nil {
		return "", &StoreError{Op: "find overlap", Err: err}
	}
	if existing != nil {
		return "", ErrDatesUnavailable
	}

	res := Reservation{
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		NumberOfPeople: req.NumberOfPeople,
		Dates:          dates,
	}
	id, err := s.store.Insert(ctx, res)
	if err != nil {
		// A concurrent booking can slip in between the overlap check and
		// the insert; the store reports that as a date clash.
		if errors.Is(err, ErrDatesUnavailable) {
			return "", ErrDatesUnavailable
		}
		return "", &StoreError{Op: "insert", Err: err}
	}

	s.log.Info("reservation booked",
		slog.String("id", id),
		slog.String("checkIn", dates[0]),
		slog.String("checkOut", dates[len(dates)-1]),
		slog.Int("partySize", res.NumberOfPeople))
	return id, nil
}

// Get looks a reservation up by id. Malformed ids are rejected before the
// store is touched.
func (s *Service) Get(ctx context.Context, id string) (*Reservation, error) {
	if !ValidateID(id) {
		return nil, ErrInvalidID
	}
	res, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, &StoreError{Op: "find by id", Err: err}
	}
	if res == nil {
		return nil, ErrNotFound
	}
	return res, nil
}

// Cancel deletes a reservation by id. When ownerEmail is non-empty the
// delete only matches a reservation booked under that (normalized) email.
func (s *Service) Cancel(ctx context.Context, id, ownerEmail string) error {
	if !ValidateID(id) {
		return ErrInvalidID
	}
	ownerEmail = strings.ToLower(strings.TrimSpace(ownerEmail))
	n, err := s.store.DeleteByID(ctx, id, ownerEmail)
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	if n != 1 {
		return ErrNotFound
	}
	s.log.Info("reservation cancelled", slog.String("id", id))
	return nil
}

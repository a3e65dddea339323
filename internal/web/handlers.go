package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/reservd/internal/reservation"
)

// User-facing messages are fixed; store error text never reaches clients.
const (
	msgInvalidFields  = "Missing or invalid email, first name, last name, number of people, check-in date, and/or check-out date."
	msgConflict       = "Dates chosen are not available."
	msgInsertFailed   = "Unable to add reservation."
	msgStoreFailed    = "Unable to process reservation request."
	msgInvalidID      = "Invalid reservation Id format."
	msgGetNotFound    = "Reservation not found."
	msgDeleteNotFound = "Reservation could not be found and or deleted."
	msgRouteNotFound  = "Resource not found"
)

func stayLengthMessage(min, max int) string {
	return fmt.Sprintf("Check-in date, and/or check-out date are invalid. Booking needs to be for at least %d day and at most %d days.", min, max)
}

func bookedMessage(id string) string {
	return fmt.Sprintf("Your reservation number is %s. To cancel your reservation or retrieve your reservation details, you will need your reservation number.", id)
}

func (s *Server) handleBook(c echo.Context) error {
	var req reservation.BookingRequest
	if err := c.Bind(&req); err != nil {
		// A body that does not decode into the request shape is a field
		// failure, reported with the same generic message.
		return c.JSON(http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest, Data: req, Message: msgInvalidFields,
		})
	}

	id, err := s.Reservations.Book(c.Request().Context(), req)
	if err == nil {
		return c.JSON(http.StatusCreated, envelope{
			Status: http.StatusCreated, Result: id, Message: bookedMessage(id),
		})
	}

	var (
		verr *reservation.ValidationError
		lerr *reservation.StayLengthError
	)
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest, Data: verr.Request, Message: msgInvalidFields,
		})
	case errors.As(err, &lerr):
		return c.JSON(http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest, Data: lerr.Request, Message: stayLengthMessage(lerr.Min, lerr.Max),
		})
	case errors.Is(err, reservation.ErrDatesUnavailable):
		return c.JSON(http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest, Data: req, Message: msgConflict,
		})
	default:
		s.logger().Error("book failed", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, envelope{
			Status: http.StatusInternalServerError, Data: req, Message: msgInsertFailed,
		})
	}
}

func (s *Server) handleGet(c echo.Context) error {
	id := c.Param("reservationId")

	res, err := s.Reservations.Get(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, envelope{
			Status: http.StatusOK, Result: res, Message: res.Summary(),
		})
	case errors.Is(err, reservation.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest, Data: id, Message: msgInvalidID,
		})
	case errors.Is(err, reservation.ErrNotFound):
		return c.JSON(http.StatusNotFound, envelope{
			Status: http.StatusNotFound, Data: id, Message: msgGetNotFound,
		})
	default:
		s.logger().Error("get failed", slog.String("id", id), slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, envelope{
			Status: http.StatusInternalServerError, Data: id, Message: msgStoreFailed,
		})
	}
}

func (s *Server) handleCancel(c echo.Context) error {
	id := c.Param("reservationId")
	ownerEmail := c.QueryParam("email")

	err := s.Reservations.Cancel(c.Request().Context(), id, ownerEmail)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, envelope{
			Status:  http.StatusOK,
			Message: fmt.Sprintf("Reservation number %s cancelled.", id),
		})
	case errors.Is(err, reservation.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, envelope{
			Status: http.StatusBadRequest, Data: id, Message: msgInvalidID,
		})
	case errors.Is(err, reservation.ErrNotFound):
		return c.JSON(http.StatusNotFound, envelope{
			Status: http.StatusNotFound, Data: id, Message: msgDeleteNotFound,
		})
	default:
		s.logger().Error("cancel failed", slog.String("id", id), slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, envelope{
			Status: http.StatusInternalServerError, Data: id, Message: msgStoreFailed,
		})
	}
}

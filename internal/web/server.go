package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/example/reservd/internal/reservation"
)

// Server exposes the reservation service over JSON HTTP.
type Server struct {
	Reservations *reservation.Service
	Log          *slog.Logger
}

// envelope is the fixed response shape: status code, an optional result,
// the offending input under data where applicable, and a message.
type envelope struct {
	Status  int    `json:"status"`
	Result  any    `json:"result,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

func (s *Server) Routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogMethod: true,
		LogURI:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger().Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status))
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok\n")
	})

	e.POST("/reservation", s.handleBook)
	e.GET("/reservation/:reservationId", s.handleGet)
	e.DELETE("/reservation/:reservationId", s.handleCancel)

	// Everything else, unknown paths and wrong methods alike, answers the
	// fixed 404 envelope.
	e.RouteNotFound("/*", s.handleNotFound)
	e.HTTPErrorHandler = s.handleError

	return e
}

func (s *Server) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func (s *Server) handleNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, envelope{Status: http.StatusNotFound, Message: msgRouteNotFound})
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code == http.StatusNotFound || code == http.StatusMethodNotAllowed {
		_ = s.handleNotFound(c)
		return
	}
	s.logger().Error("unhandled request error", slog.Any("error", err))
	_ = c.JSON(code, envelope{Status: code, Message: http.StatusText(code)})
}

// Start serves e on addr until ctx is cancelled, then shuts down
// gracefully.
func Start(ctx context.Context, addr string, e *echo.Echo) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

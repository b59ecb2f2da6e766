// Package web exposes the scheduling engine as a JSON HTTP API.
//
// Authentication is out of scope: the owner identity is taken from the
// X-Owner-ID header, which must be a UUID. Everything behind it is scoped
// to that owner.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vocadue/vocadue/internal/apperr"
)

// OwnerHeader carries the caller's owner id.
const OwnerHeader = "X-Owner-ID"

// Server holds the dependencies for the HTTP server.
type Server struct {
	echo      *echo.Echo
	scheduler Scheduler

	// now supplies the reference instant for every request; tests
	// replace it with a fixed clock.
	now func() time.Time
}

// NewServer creates and configures a new server.
func NewServer(scheduler Scheduler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	s := &Server{
		echo:      e,
		scheduler: scheduler,
		now:       time.Now,
	}
	s.routes()
	return s
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	api := s.echo.Group("/api/v1", s.requireOwner)

	api.GET("/review/today", s.handleGetDueToday)
	api.POST("/review/:cardID", s.handlePostOutcome)
	api.GET("/review/upcoming", s.handleGetUpcoming)

	api.GET("/schedule", s.handleGetSchedule)
	api.PUT("/schedule", s.handlePutSchedule)

	api.GET("/streak", s.handleGetStreak)

	api.POST("/cards", s.handlePostCard)
	api.GET("/cards", s.handleGetCards)
	api.GET("/cards/:cardID", s.handleGetCard)
	api.DELETE("/cards/:cardID", s.handleDeleteCard)
	api.POST("/cards/:cardID/reset", s.handleResetCard)
	api.POST("/cards/:cardID/pause", s.handlePauseCard)
	api.POST("/cards/:cardID/complete", s.handleCompleteCard)
}

// Start begins serving on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// requireOwner parses the owner header and stashes it on the context.
func (s *Server) requireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(OwnerHeader)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing "+OwnerHeader+" header")
		}
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid "+OwnerHeader+" header")
		}
		c.Set("ownerID", ownerID)
		return next(c)
	}
}

func owner(c echo.Context) uuid.UUID {
	return c.Get("ownerID").(uuid.UUID)
}

// httpError maps scheduler error codes onto HTTP statuses.
func httpError(err error) error {
	switch apperr.CodeOf(err) {
	case apperr.CodeNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperr.CodeUnauthorized:
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case apperr.CodeInvalidSchedule, apperr.CodeInvalidInput:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperr.CodeInvalidCardState:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case apperr.CodeVersionConflict:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case apperr.CodeMalformedTemporalData:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

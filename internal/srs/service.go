// Package srs implements the spaced-repetition scheduling engine: due-today
// selection, review outcome processing, upcoming-review projection, and
// streak tracking over an interval-curve schedule.
//
// Every operation takes an explicit reference instant instead of reading the
// wall clock, so callers (and tests) control "now". Day boundaries are
// computed in a single configured timezone.
package srs

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/domain"
)

// Store is the persistence interface the engine schedules over.
// Lookup methods return (nil, nil) when the record does not exist.
type Store interface {
	GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	ListCards(ctx context.Context, ownerID uuid.UUID) ([]domain.Card, error)
	ListActiveCards(ctx context.Context, ownerID uuid.UUID) ([]domain.Card, error)
	InsertCard(ctx context.Context, card *domain.Card) error
	UpdateCard(ctx context.Context, card *domain.Card) error
	DeleteCard(ctx context.Context, id uuid.UUID) error

	// ApplyOutcome appends the event and updates the card as one unit,
	// guarded by the card's version at read time.
	ApplyOutcome(ctx context.Context, card *domain.Card, event *domain.ReviewEvent) error
	ListEventsBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.ReviewEvent, error)
	ListEventTimes(ctx context.Context, ownerID uuid.UUID) ([]time.Time, error)

	GetSchedule(ctx context.Context, ownerID uuid.UUID) (*domain.ReviewSchedule, error)
	UpsertSchedule(ctx context.Context, schedule *domain.ReviewSchedule) error
}

// Service is the scheduling engine. It is stateless between calls; all
// state lives on the card and event records.
type Service struct {
	store    Store
	loc      *time.Location
	defaults DefaultSchedule
	validate *validator.Validate
}

// DefaultSchedule is the curve used for owners without a stored schedule.
type DefaultSchedule struct {
	Name        string
	Description string
	Intervals   []int
}

// NewService creates a scheduling engine. loc anchors all calendar-day
// boundaries; nil means UTC.
func NewService(store Store, loc *time.Location, defaults DefaultSchedule) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if len(defaults.Intervals) == 0 {
		defaults.Intervals = []int{1, 7, 30, 365}
	}
	if defaults.Name == "" {
		defaults.Name = "Default"
	}
	return &Service{
		store:    store,
		loc:      loc,
		defaults: defaults,
		validate: validator.New(),
	}
}

// Location returns the timezone anchoring all calendar-day boundaries.
func (s *Service) Location() *time.Location {
	return s.loc
}

// startOfDay truncates t to midnight in the service timezone.
func (s *Service) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// dayKey renders the calendar date of t in the service timezone.
func (s *Service) dayKey(t time.Time) string {
	return t.In(s.loc).Format(time.DateOnly)
}

// onOrBeforeDay reports whether t falls on the reference day or earlier.
func (s *Service) onOrBeforeDay(t, reference time.Time) bool {
	return t.Before(s.startOfDay(reference).AddDate(0, 0, 1))
}

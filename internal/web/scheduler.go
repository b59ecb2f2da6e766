package web

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/domain"
	"github.com/vocadue/vocadue/internal/srs"
)

// Scheduler is the slice of the scheduling engine the HTTP layer consumes.
type Scheduler interface {
	// Location is the timezone calendar-day parameters are interpreted in.
	Location() *time.Location

	SelectDueToday(ctx context.Context, ownerID uuid.UUID, reference time.Time, repeat bool) (*srs.DueToday, error)
	SubmitOutcome(ctx context.Context, ownerID, cardID uuid.UUID, isSuccess bool, timeSpentMS *int64, now time.Time) (*domain.Card, error)
	ProjectUpcoming(ctx context.Context, ownerID uuid.UUID, windowStart, windowEnd time.Time) (*srs.Upcoming, error)

	GetSchedule(ctx context.Context, ownerID uuid.UUID) (*domain.ReviewSchedule, error)
	UpdateSchedule(ctx context.Context, ownerID uuid.UUID, intervals []int, name, description string, now time.Time) (*domain.ReviewSchedule, error)

	Streak(ctx context.Context, ownerID uuid.UUID, reference time.Time) (*domain.Streak, error)

	CreateCard(ctx context.Context, ownerID uuid.UUID, in srs.NewCard, now time.Time) (*domain.Card, error)
	GetCard(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.Card, error)
	ListCards(ctx context.Context, ownerID uuid.UUID) ([]domain.Card, error)
	DeleteCard(ctx context.Context, ownerID, cardID uuid.UUID) error
	ResetCardToReview(ctx context.Context, ownerID, cardID uuid.UUID, now time.Time) (*domain.Card, error)
	PauseCard(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.Card, error)
	CompleteCard(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.Card, error)
}

package srs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/apperr"
	"github.com/vocadue/vocadue/internal/domain"
)

// scheduleUpdate is the validated shape of an interval-curve replacement.
type scheduleUpdate struct {
	Intervals []int  `validate:"required,min=1,dive,gt=0"`
	Name      string `validate:"max=120"`
}

// GetSchedule returns the owner's stored schedule, or the configured
// default curve when none has been saved yet.
func (s *Service) GetSchedule(ctx context.Context, ownerID uuid.UUID) (*domain.ReviewSchedule, error) {
	stored, err := s.store.GetSchedule(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get schedule for owner %s: %w", ownerID, err)
	}
	if stored != nil {
		return stored, nil
	}
	return &domain.ReviewSchedule{
		OwnerID:     ownerID,
		Name:        s.defaults.Name,
		Description: s.defaults.Description,
		Intervals:   append([]int(nil), s.defaults.Intervals...),
	}, nil
}

// UpdateSchedule replaces the owner's interval curve wholesale. The new
// curve affects future step transitions only; already-scheduled NextReview
// values stay put until the card's next outcome recomputes them.
func (s *Service) UpdateSchedule(ctx context.Context, ownerID uuid.UUID, intervals []int, name, description string, now time.Time) (*domain.ReviewSchedule, error) {
	if err := s.validate.Struct(scheduleUpdate{Intervals: intervals, Name: name}); err != nil {
		return nil, apperr.InvalidSchedule("intervals must be a non-empty list of positive day counts", err)
	}

	existing, err := s.store.GetSchedule(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get schedule for owner %s: %w", ownerID, err)
	}

	schedule := &domain.ReviewSchedule{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Intervals:   append([]int(nil), intervals...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing != nil {
		schedule.CreatedAt = existing.CreatedAt
	}
	if schedule.Name == "" {
		schedule.Name = s.defaults.Name
	}

	if err := s.store.UpsertSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("save schedule for owner %s: %w", ownerID, err)
	}
	return schedule, nil
}

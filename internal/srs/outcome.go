package srs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/apperr"
	"github.com/vocadue/vocadue/internal/domain"
)

// SubmitOutcome applies one pass/fail review to a card.
//
// The event append and the card mutation are committed as one unit; a
// concurrent submission for the same card loses the version check and
// surfaces VERSION_CONFLICT, so the step never double-advances.
//
// Interval arithmetic: intervals[i] is the wait after completing step i-1.
// A success completes step reviewStep+1 and waits intervals[newStep+1]
// (clamped to the last interval); walking off the end of the curve marks
// the card COMPLETED and freezes its due date. A failure sends the card
// back to step 0 and waits intervals[0].
func (s *Service) SubmitOutcome(ctx context.Context, ownerID, cardID uuid.UUID, isSuccess bool, timeSpentMS *int64, now time.Time) (*domain.Card, error) {
	card, err := s.ownedCard(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}
	if card.ReviewStatus != domain.StatusActive {
		return nil, apperr.InvalidCardState(fmt.Sprintf("card %s is %s, not ACTIVE", cardID, card.ReviewStatus))
	}
	if card.NextReview.IsZero() || card.CreatedAt.IsZero() {
		return nil, apperr.MalformedTemporalData(fmt.Sprintf("card %s has invalid stored dates", cardID))
	}

	schedule, err := s.GetSchedule(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	event := &domain.ReviewEvent{
		ID:          uuid.New(),
		CardID:      card.ID,
		OwnerID:     ownerID,
		IsSuccess:   isSuccess,
		TimeSpentMS: timeSpentMS,
		CreatedAt:   now,
	}

	if isSuccess {
		card.SuccessCount++
		newStep := card.ReviewStep + 1
		if schedule.Exhausts(newStep) {
			card.ReviewStatus = domain.StatusCompleted
		} else {
			reviewed := now
			card.ReviewStep = newStep
			card.LastReviewed = &reviewed
			card.NextReview = schedule.NextReviewFrom(now, newStep+1)
		}
	} else {
		card.FailureCount++
		reviewed := now
		card.ReviewStep = 0
		card.LastReviewed = &reviewed
		card.NextReview = schedule.NextReviewFrom(now, 0)
	}

	if err := s.store.ApplyOutcome(ctx, card, event); err != nil {
		return nil, fmt.Errorf("apply outcome for card %s: %w", cardID, err)
	}
	return card, nil
}

// ResetCardToReview re-enrolls a card at the start of the curve: step back
// to -1, last-reviewed cleared, due again after the first interval. Used by
// "add to review" on paused or completed cards as well as active ones.
// Success and failure counters are preserved.
func (s *Service) ResetCardToReview(ctx context.Context, ownerID, cardID uuid.UUID, now time.Time) (*domain.Card, error) {
	card, err := s.ownedCard(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}
	schedule, err := s.GetSchedule(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	card.ReviewStep = domain.NewStep
	card.LastReviewed = nil
	card.NextReview = schedule.NextReviewFrom(now, 0)
	card.ReviewStatus = domain.StatusActive

	if err := s.store.UpdateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("reset card %s: %w", cardID, err)
	}
	return card, nil
}

// PauseCard takes a card out of scheduling without touching its progress.
func (s *Service) PauseCard(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.Card, error) {
	return s.setStatus(ctx, ownerID, cardID, domain.StatusPaused)
}

// CompleteCard marks a card done by explicit user action.
func (s *Service) CompleteCard(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.Card, error) {
	return s.setStatus(ctx, ownerID, cardID, domain.StatusCompleted)
}

func (s *Service) setStatus(ctx context.Context, ownerID, cardID uuid.UUID, status domain.ReviewStatus) (*domain.Card, error) {
	card, err := s.ownedCard(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}
	card.ReviewStatus = status
	if err := s.store.UpdateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("update card %s status: %w", cardID, err)
	}
	return card, nil
}

// ownedCard fetches a card and checks ownership.
func (s *Service) ownedCard(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("get card %s: %w", cardID, err)
	}
	if card == nil {
		return nil, apperr.NotFound(fmt.Sprintf("card %s", cardID))
	}
	if card.OwnerID != ownerID {
		return nil, apperr.Unauthorized(fmt.Sprintf("card %s is not owned by caller", cardID))
	}
	return card, nil
}

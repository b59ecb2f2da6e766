package srs

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/domain"
)

// DueToday is the queue of cards an owner should review now.
// Cards carries the session order (shuffled for repeat sessions);
// CardsByStep is the same set grouped by max(reviewStep, 0) for display.
type DueToday struct {
	Cards       []domain.Card         `json:"cards"`
	CardsByStep map[int][]domain.Card `json:"cardsByStep"`
	Total       int                   `json:"total"`
}

// SelectDueToday computes the owner's review queue for the reference day.
//
// Cards already reviewed today are excluded unless repeat is set, in which
// case they are re-included and the whole queue is shuffled so a repeat
// session does not replay in the original order. A card with a review event
// today stays excluded from non-repeat queues for the rest of that day, no
// matter how many times it was reviewed.
func (s *Service) SelectDueToday(ctx context.Context, ownerID uuid.UUID, reference time.Time, repeat bool) (*DueToday, error) {
	cards, err := s.store.ListActiveCards(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list active cards for owner %s: %w", ownerID, err)
	}

	dayStart := s.startOfDay(reference)
	events, err := s.store.ListEventsBetween(ctx, ownerID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list today's events for owner %s: %w", ownerID, err)
	}
	reviewedToday := make(map[uuid.UUID]bool, len(events))
	for _, ev := range events {
		reviewedToday[ev.CardID] = true
	}

	var selected []domain.Card
	for _, card := range cards {
		if card.NextReview.IsZero() {
			// Malformed stored date; skip the card rather than abort the queue.
			slog.Warn("skipping card with invalid next review date", "card_id", card.ID)
			continue
		}
		if reviewedToday[card.ID] {
			if repeat {
				selected = append(selected, card)
			}
			continue
		}
		// Both the just-added path (never reviewed, newly enrolled) and the
		// overdue path reduce to the same day-granularity comparison.
		if s.onOrBeforeDay(card.NextReview, reference) {
			selected = append(selected, card)
		}
	}

	if repeat {
		rand.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
	}

	byStep := make(map[int][]domain.Card)
	for _, card := range selected {
		step := card.ReviewStep
		if step < 0 {
			step = 0
		}
		byStep[step] = append(byStep[step], card)
	}

	return &DueToday{
		Cards:       selected,
		CardsByStep: byStep,
		Total:       len(selected),
	}, nil
}

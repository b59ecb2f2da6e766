package srs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// UpcomingCard is one card's contribution to a calendar day: either its
// immediate next review, or a hypothetical later review assuming the user
// keeps succeeding (IsFutureReview set).
type UpcomingCard struct {
	CardID         uuid.UUID `json:"cardId"`
	Word           string    `json:"word"`
	ReviewStep     int       `json:"reviewStep"`
	IsFutureReview bool      `json:"isFutureReview"`
	Reviewed       bool      `json:"reviewed"`
	FromFailure    bool      `json:"fromFailure"`
}

// DayLoad aggregates the review load of one calendar day.
type DayLoad struct {
	Total       int            `json:"total"`
	Reviewed    int            `json:"reviewed"`
	NotReviewed int            `json:"notReviewed"`
	FromFailure int            `json:"fromFailure"`
	Cards       []UpcomingCard `json:"cards"`
}

// Upcoming is the calendar-keyed projection of review load over a window.
type Upcoming struct {
	CardsByDate map[string]*DayLoad `json:"cardsByDate"`
	Total       int                 `json:"total"`
	Intervals   []int               `json:"intervals"`
}

// ProjectUpcoming projects each active card's immediate next review and all
// potential later reviews onto the half-open window [windowStart, windowEnd),
// keyed by calendar date in the service timezone.
//
// The immediate review is derived from the card's base date plus its current
// interval; potential reviews add one entry per remaining curve step unless
// the card already contributed an entry on that date. Cards with malformed
// stored dates are skipped so one bad row cannot sink the whole projection.
func (s *Service) ProjectUpcoming(ctx context.Context, ownerID uuid.UUID, windowStart, windowEnd time.Time) (*Upcoming, error) {
	schedule, err := s.GetSchedule(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cards, err := s.store.ListActiveCards(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list active cards for owner %s: %w", ownerID, err)
	}
	events, err := s.store.ListEventsBetween(ctx, ownerID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("list events for owner %s: %w", ownerID, err)
	}

	// Calendar dates on which each card has at least one review event.
	reviewedOn := make(map[uuid.UUID]map[string]bool)
	for _, ev := range events {
		days := reviewedOn[ev.CardID]
		if days == nil {
			days = make(map[string]bool)
			reviewedOn[ev.CardID] = days
		}
		days[s.dayKey(ev.CreatedAt)] = true
	}

	result := &Upcoming{
		CardsByDate: make(map[string]*DayLoad),
		Intervals:   append([]int(nil), schedule.Intervals...),
	}

	inWindow := func(t time.Time) bool {
		return !t.Before(windowStart) && t.Before(windowEnd)
	}
	dayFor := func(key string) *DayLoad {
		load := result.CardsByDate[key]
		if load == nil {
			load = &DayLoad{}
			result.CardsByDate[key] = load
		}
		return load
	}

	for _, card := range cards {
		if card.CreatedAt.IsZero() || (card.LastReviewed != nil && card.LastReviewed.IsZero()) {
			slog.Warn("skipping card with invalid base date in projection", "card_id", card.ID)
			continue
		}
		base := card.BaseDate()
		seen := make(map[string]bool)

		// Immediate next review: base date plus the current interval.
		// An out-of-range step falls back into the curve here only.
		immediate := schedule.NextReviewFrom(base, card.ReviewStep)
		if inWindow(immediate) {
			key := s.dayKey(immediate)
			load := dayFor(key)
			entry := UpcomingCard{
				CardID:     card.ID,
				Word:       card.Word,
				ReviewStep: card.ReviewStep,
			}
			if reviewedOn[card.ID][key] {
				entry.Reviewed = true
				load.Reviewed++
			} else {
				load.NotReviewed++
				if card.FailureCount > 0 {
					entry.FromFailure = true
					load.FromFailure++
				}
			}
			load.Total++
			load.Cards = append(load.Cards, entry)
			result.Total++
			seen[key] = true
		}

		// Potential later reviews, one per remaining curve step. A step
		// landing on a date this card already occupies is not re-counted.
		for step := card.ReviewStep + 1; step < len(schedule.Intervals); step++ {
			future := base.AddDate(0, 0, schedule.Intervals[step])
			if !inWindow(future) {
				continue
			}
			key := s.dayKey(future)
			if seen[key] {
				continue
			}
			seen[key] = true
			load := dayFor(key)
			load.Total++
			load.NotReviewed++
			load.Cards = append(load.Cards, UpcomingCard{
				CardID:         card.ID,
				Word:           card.Word,
				ReviewStep:     step,
				IsFutureReview: true,
			})
			result.Total++
		}
	}

	return result, nil
}

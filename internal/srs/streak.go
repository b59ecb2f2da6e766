package srs

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/domain"
)

// Streak derives the owner's consecutive-day review streaks from the full
// event log. A day counts when it has at least one review event. The
// current streak remains valid when today has no event yet: until the day
// fully elapses, a run ending yesterday still counts as current.
func (s *Service) Streak(ctx context.Context, ownerID uuid.UUID, reference time.Time) (*domain.Streak, error) {
	times, err := s.store.ListEventTimes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list event times for owner %s: %w", ownerID, err)
	}

	daySet := make(map[string]bool, len(times))
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		daySet[s.dayKey(t)] = true
	}
	if len(daySet) == 0 {
		return &domain.Streak{}, nil
	}

	// Current streak: walk backward day by day from today, or from
	// yesterday when today has no event yet.
	today := s.startOfDay(reference)
	cursor := today
	if !daySet[s.dayKey(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	current := 0
	for daySet[s.dayKey(cursor)] {
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	// Longest streak: longest run of consecutive dates over all history.
	days := make([]time.Time, 0, len(daySet))
	for key := range daySet {
		d, err := time.ParseInLocation(time.DateOnly, key, s.loc)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return &domain.Streak{CurrentStreak: current, LongestStreak: longest}, nil
}

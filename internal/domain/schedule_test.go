package domain

import (
	"testing"
	"time"
)

func TestIntervalAt(t *testing.T) {
	s := &ReviewSchedule{Intervals: []int{1, 7, 30}}

	t.Run("new card reads the first interval", func(t *testing.T) {
		if got := s.IntervalAt(NewStep); got != 1 {
			t.Errorf("Expected interval 1 for a new card, got %d", got)
		}
	})

	t.Run("in-range step", func(t *testing.T) {
		if got := s.IntervalAt(1); got != 7 {
			t.Errorf("Expected interval 7 at step 1, got %d", got)
		}
	})

	t.Run("overflow clamps to the last interval", func(t *testing.T) {
		if got := s.IntervalAt(9); got != 30 {
			t.Errorf("Expected interval 30 for an out-of-range step, got %d", got)
		}
	})
}

func TestExhausts(t *testing.T) {
	s := &ReviewSchedule{Intervals: []int{1, 7, 30}}
	if s.Exhausts(2) {
		t.Error("Step 2 should not exhaust a three-interval curve")
	}
	if !s.Exhausts(3) {
		t.Error("Step 3 should exhaust a three-interval curve")
	}
}

func TestNextReviewFrom(t *testing.T) {
	s := &ReviewSchedule{Intervals: []int{1, 7, 30}}
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	got := s.NextReviewFrom(base, 1)
	want := base.AddDate(0, 0, 7)
	if !got.Equal(want) {
		t.Errorf("Expected next review at %v, got %v", want, got)
	}
}

func TestBaseDate(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	reviewed := created.AddDate(0, 0, 5)

	card := Card{CreatedAt: created}
	if !card.BaseDate().Equal(created) {
		t.Error("Expected an unreviewed card to base on its creation time")
	}

	card.LastReviewed = &reviewed
	if !card.BaseDate().Equal(reviewed) {
		t.Error("Expected a reviewed card to base on its last review")
	}
}

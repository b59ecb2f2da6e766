package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewSchedule is an owner's interval curve: the ordered list of waits,
// in days, a card advances through on successive successful reviews.
// Intervals need not be increasing; index order is the curve.
type ReviewSchedule struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	Intervals   []int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IntervalAt returns the wait in days for the given step, clamping the
// step into the curve so a new card (step -1) reads the first interval
// and an out-of-range step reads the last.
func (s *ReviewSchedule) IntervalAt(step int) int {
	if step < 0 {
		step = 0
	}
	if step >= len(s.Intervals) {
		step = len(s.Intervals) - 1
	}
	return s.Intervals[step]
}

// Exhausts reports whether advancing to the given step walks off the
// end of the curve.
func (s *ReviewSchedule) Exhausts(step int) bool {
	return step >= len(s.Intervals)
}

// NextReviewFrom computes the due instant for a card at the given step,
// counted from base.
func (s *ReviewSchedule) NextReviewFrom(base time.Time, step int) time.Time {
	return base.AddDate(0, 0, s.IntervalAt(step))
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the lifecycle state of a card with respect to scheduling.
type ReviewStatus string

const (
	StatusActive     ReviewStatus = "ACTIVE"
	StatusCompleted  ReviewStatus = "COMPLETED"
	StatusPaused     ReviewStatus = "PAUSED"
	StatusNotStarted ReviewStatus = "NOT_STARTED"
)

// NewStep marks a card that has been enrolled but never reviewed.
const NewStep = -1

// Card is a single vocabulary entry together with its review state.
// Word and Definition are the learnable content; Synonym, Antonym, Example
// and Notes are inert with respect to scheduling.
type Card struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	ListID  *uuid.UUID

	Word       string
	Definition string
	Synonym    string
	Antonym    string
	Example    string
	Notes      string

	// ReviewStep indexes into the owner's interval curve. NewStep (-1)
	// means the card is enrolled but has never been reviewed.
	ReviewStep   int
	LastReviewed *time.Time
	NextReview   time.Time

	SuccessCount int
	FailureCount int
	ReviewStatus ReviewStatus

	CreatedAt time.Time

	// Version guards the derived review fields against concurrent
	// outcome submissions for the same card.
	Version int64
}

// BaseDate is the anchor review dates are derived from.
func (c *Card) BaseDate() time.Time {
	if c.LastReviewed != nil {
		return *c.LastReviewed
	}
	return c.CreatedAt
}

// ReviewEvent records a single review outcome for a card.
// Events are append-only; they are never mutated or deleted while the
// card exists, and cascade away with it.
type ReviewEvent struct {
	ID          uuid.UUID
	CardID      uuid.UUID
	OwnerID     uuid.UUID
	IsSuccess   bool
	TimeSpentMS *int64
	CreatedAt   time.Time
}

// Streak holds the derived consecutive-day review counters for an owner.
type Streak struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

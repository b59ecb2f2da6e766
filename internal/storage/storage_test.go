package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/apperr"
	"github.com/vocadue/vocadue/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testCard(owner uuid.UUID) *domain.Card {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Card{
		ID:           uuid.New(),
		OwnerID:      owner,
		Word:         "ubiquitous",
		Definition:   "present everywhere",
		ReviewStep:   domain.NewStep,
		NextReview:   created.AddDate(0, 0, 1),
		ReviewStatus: domain.StatusActive,
		CreatedAt:    created,
	}
}

func TestInsertAndGetCard(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := uuid.New()
	card := testCard(owner)

	if err := db.InsertCard(ctx, card); err != nil {
		t.Fatalf("Failed to insert card: %v", err)
	}

	got, err := db.GetCard(ctx, card.ID)
	if err != nil {
		t.Fatalf("Failed to get card: %v", err)
	}
	if got == nil {
		t.Fatal("Expected card, got nil")
	}
	if got.Word != card.Word || got.Definition != card.Definition {
		t.Errorf("Card content mismatch: got %q/%q", got.Word, got.Definition)
	}
	if got.ReviewStep != domain.NewStep {
		t.Errorf("Expected review step %d, got %d", domain.NewStep, got.ReviewStep)
	}
	if !got.NextReview.Equal(card.NextReview) {
		t.Errorf("Expected next review %v, got %v", card.NextReview, got.NextReview)
	}
	if got.LastReviewed != nil {
		t.Errorf("Expected nil last reviewed, got %v", got.LastReviewed)
	}
}

func TestGetCardNotFound(t *testing.T) {
	db := openTestDB(t)
	got, err := db.GetCard(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing card, got %+v", got)
	}
}

func TestListActiveCardsFiltersStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := uuid.New()

	active := testCard(owner)
	paused := testCard(owner)
	paused.ReviewStatus = domain.StatusPaused
	other := testCard(uuid.New())

	for _, c := range []*domain.Card{active, paused, other} {
		if err := db.InsertCard(ctx, c); err != nil {
			t.Fatalf("Failed to insert card: %v", err)
		}
	}

	cards, err := db.ListActiveCards(ctx, owner)
	if err != nil {
		t.Fatalf("Failed to list active cards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("Expected 1 active card, got %d", len(cards))
	}
	if cards[0].ID != active.ID {
		t.Errorf("Expected card %s, got %s", active.ID, cards[0].ID)
	}
}

func TestApplyOutcome(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := uuid.New()
	card := testCard(owner)
	if err := db.InsertCard(ctx, card); err != nil {
		t.Fatalf("Failed to insert card: %v", err)
	}

	now := card.CreatedAt.AddDate(0, 0, 1)
	card.ReviewStep = 0
	card.LastReviewed = &now
	card.NextReview = now.AddDate(0, 0, 7)
	card.SuccessCount = 1

	event := &domain.ReviewEvent{
		ID:        uuid.New(),
		CardID:    card.ID,
		OwnerID:   owner,
		IsSuccess: true,
		CreatedAt: now,
	}
	if err := db.ApplyOutcome(ctx, card, event); err != nil {
		t.Fatalf("Failed to apply outcome: %v", err)
	}

	got, err := db.GetCard(ctx, card.ID)
	if err != nil {
		t.Fatalf("Failed to get card: %v", err)
	}
	if got.ReviewStep != 0 || got.SuccessCount != 1 {
		t.Errorf("Card state not updated: step=%d successes=%d", got.ReviewStep, got.SuccessCount)
	}
	if got.Version != 1 {
		t.Errorf("Expected version 1 after outcome, got %d", got.Version)
	}

	events, err := db.ListEventsBetween(ctx, owner, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].CardID != card.ID || !events[0].IsSuccess {
		t.Errorf("Event mismatch: %+v", events[0])
	}
}

func TestApplyOutcomeVersionConflict(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := uuid.New()
	card := testCard(owner)
	if err := db.InsertCard(ctx, card); err != nil {
		t.Fatalf("Failed to insert card: %v", err)
	}

	stale := *card
	event := &domain.ReviewEvent{
		ID: uuid.New(), CardID: card.ID, OwnerID: owner,
		IsSuccess: true, CreatedAt: card.CreatedAt.AddDate(0, 0, 1),
	}
	if err := db.ApplyOutcome(ctx, card, event); err != nil {
		t.Fatalf("Failed to apply first outcome: %v", err)
	}

	// The second submission read the card before the first one landed.
	event2 := &domain.ReviewEvent{
		ID: uuid.New(), CardID: card.ID, OwnerID: owner,
		IsSuccess: true, CreatedAt: card.CreatedAt.AddDate(0, 0, 1),
	}
	err := db.ApplyOutcome(ctx, &stale, event2)
	if err == nil {
		t.Fatal("Expected version conflict, got nil")
	}
	var coded *apperr.Error
	if !errors.As(err, &coded) || coded.Code != apperr.CodeVersionConflict {
		t.Errorf("Expected VERSION_CONFLICT, got %v", err)
	}

	// The losing event must not have been committed.
	events, err := db.ListEventTimes(ctx, owner)
	if err != nil {
		t.Fatalf("Failed to list event times: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected 1 committed event, got %d", len(events))
	}
}

func TestDeleteCardCascadesEvents(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := uuid.New()
	card := testCard(owner)
	if err := db.InsertCard(ctx, card); err != nil {
		t.Fatalf("Failed to insert card: %v", err)
	}

	event := &domain.ReviewEvent{
		ID: uuid.New(), CardID: card.ID, OwnerID: owner,
		IsSuccess: true, CreatedAt: card.CreatedAt.AddDate(0, 0, 1),
	}
	if err := db.ApplyOutcome(ctx, card, event); err != nil {
		t.Fatalf("Failed to apply outcome: %v", err)
	}

	if err := db.DeleteCard(ctx, card.ID); err != nil {
		t.Fatalf("Failed to delete card: %v", err)
	}

	times, err := db.ListEventTimes(ctx, owner)
	if err != nil {
		t.Fatalf("Failed to list event times: %v", err)
	}
	if len(times) != 0 {
		t.Errorf("Expected events to cascade with the card, found %d", len(times))
	}
}

func TestScheduleRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	owner := uuid.New()

	missing, err := db.GetSchedule(ctx, owner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing schedule, got %+v", missing)
	}

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	schedule := &domain.ReviewSchedule{
		OwnerID:     owner,
		Name:        "Aggressive",
		Description: "short gaps",
		Intervals:   []int{1, 2, 4, 8},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.UpsertSchedule(ctx, schedule); err != nil {
		t.Fatalf("Failed to upsert schedule: %v", err)
	}

	got, err := db.GetSchedule(ctx, owner)
	if err != nil {
		t.Fatalf("Failed to get schedule: %v", err)
	}
	if got.Name != "Aggressive" || len(got.Intervals) != 4 || got.Intervals[3] != 8 {
		t.Errorf("Schedule mismatch: %+v", got)
	}

	// Replacing the curve overwrites wholesale.
	schedule.Intervals = []int{3}
	schedule.Name = "Relaxed"
	schedule.UpdatedAt = now.AddDate(0, 0, 1)
	if err := db.UpsertSchedule(ctx, schedule); err != nil {
		t.Fatalf("Failed to upsert schedule again: %v", err)
	}
	got, err = db.GetSchedule(ctx, owner)
	if err != nil {
		t.Fatalf("Failed to get schedule: %v", err)
	}
	if got.Name != "Relaxed" || len(got.Intervals) != 1 {
		t.Errorf("Schedule not replaced: %+v", got)
	}
}

package srs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/apperr"
	"github.com/vocadue/vocadue/internal/domain"
)

// memStore is an in-memory Store for engine tests. It mirrors the sqlite
// store's contract: lookups return (nil, nil) when missing, ApplyOutcome is
// version-checked, and returned cards are copies.
type memStore struct {
	cards     map[uuid.UUID]*domain.Card
	events    []domain.ReviewEvent
	schedules map[uuid.UUID]*domain.ReviewSchedule
}

func newMemStore() *memStore {
	return &memStore{
		cards:     make(map[uuid.UUID]*domain.Card),
		schedules: make(map[uuid.UUID]*domain.ReviewSchedule),
	}
}

func copyCard(c *domain.Card) *domain.Card {
	out := *c
	if c.LastReviewed != nil {
		t := *c.LastReviewed
		out.LastReviewed = &t
	}
	return &out
}

func (m *memStore) GetCard(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := m.cards[id]
	if !ok {
		return nil, nil
	}
	return copyCard(card), nil
}

func (m *memStore) ListCards(_ context.Context, ownerID uuid.UUID) ([]domain.Card, error) {
	var out []domain.Card
	for _, c := range m.cards {
		if c.OwnerID == ownerID {
			out = append(out, *copyCard(c))
		}
	}
	return out, nil
}

func (m *memStore) ListActiveCards(_ context.Context, ownerID uuid.UUID) ([]domain.Card, error) {
	var out []domain.Card
	for _, c := range m.cards {
		if c.OwnerID == ownerID && c.ReviewStatus == domain.StatusActive {
			out = append(out, *copyCard(c))
		}
	}
	return out, nil
}

func (m *memStore) InsertCard(_ context.Context, card *domain.Card) error {
	m.cards[card.ID] = copyCard(card)
	return nil
}

func (m *memStore) UpdateCard(_ context.Context, card *domain.Card) error {
	card.Version++
	m.cards[card.ID] = copyCard(card)
	return nil
}

func (m *memStore) DeleteCard(_ context.Context, id uuid.UUID) error {
	delete(m.cards, id)
	kept := m.events[:0]
	for _, ev := range m.events {
		if ev.CardID != id {
			kept = append(kept, ev)
		}
	}
	m.events = kept
	return nil
}

func (m *memStore) ApplyOutcome(_ context.Context, card *domain.Card, event *domain.ReviewEvent) error {
	stored, ok := m.cards[card.ID]
	if !ok {
		return apperr.NotFound("card " + card.ID.String())
	}
	if stored.Version != card.Version {
		return apperr.VersionConflict("card " + card.ID.String())
	}
	m.events = append(m.events, *event)
	card.Version++
	m.cards[card.ID] = copyCard(card)
	return nil
}

func (m *memStore) ListEventsBetween(_ context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.ReviewEvent, error) {
	var out []domain.ReviewEvent
	for _, ev := range m.events {
		if ev.OwnerID == ownerID && !ev.CreatedAt.Before(from) && ev.CreatedAt.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memStore) ListEventTimes(_ context.Context, ownerID uuid.UUID) ([]time.Time, error) {
	var out []time.Time
	for _, ev := range m.events {
		if ev.OwnerID == ownerID {
			out = append(out, ev.CreatedAt)
		}
	}
	return out, nil
}

func (m *memStore) GetSchedule(_ context.Context, ownerID uuid.UUID) (*domain.ReviewSchedule, error) {
	s, ok := m.schedules[ownerID]
	if !ok {
		return nil, nil
	}
	out := *s
	out.Intervals = append([]int(nil), s.Intervals...)
	return &out, nil
}

func (m *memStore) UpsertSchedule(_ context.Context, schedule *domain.ReviewSchedule) error {
	out := *schedule
	out.Intervals = append([]int(nil), schedule.Intervals...)
	m.schedules[schedule.OwnerID] = &out
	return nil
}

package srs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/apperr"
	"github.com/vocadue/vocadue/internal/domain"
)

// NewCard is the input for enrolling a vocabulary card.
type NewCard struct {
	Word       string `validate:"required,max=200"`
	Definition string `validate:"required,max=2000"`
	Synonym    string `validate:"max=500"`
	Antonym    string `validate:"max=500"`
	Example    string `validate:"max=2000"`
	Notes      string `validate:"max=2000"`
	ListID     *uuid.UUID
}

// CreateCard enrolls a new card: step -1, active, due after the first
// interval of the owner's curve.
func (s *Service) CreateCard(ctx context.Context, ownerID uuid.UUID, in NewCard, now time.Time) (*domain.Card, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.InvalidInput("word and definition are required", err)
	}
	schedule, err := s.GetSchedule(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	card := &domain.Card{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		ListID:       in.ListID,
		Word:         in.Word,
		Definition:   in.Definition,
		Synonym:      in.Synonym,
		Antonym:      in.Antonym,
		Example:      in.Example,
		Notes:        in.Notes,
		ReviewStep:   domain.NewStep,
		NextReview:   schedule.NextReviewFrom(now, 0),
		ReviewStatus: domain.StatusActive,
		CreatedAt:    now,
	}
	if err := s.store.InsertCard(ctx, card); err != nil {
		return nil, fmt.Errorf("insert card %s: %w", card.ID, err)
	}
	return card, nil
}

// GetCard fetches a single owned card.
func (s *Service) GetCard(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.Card, error) {
	return s.ownedCard(ctx, ownerID, cardID)
}

// ListCards returns all of the owner's cards regardless of status.
func (s *Service) ListCards(ctx context.Context, ownerID uuid.UUID) ([]domain.Card, error) {
	cards, err := s.store.ListCards(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cards for owner %s: %w", ownerID, err)
	}
	return cards, nil
}

// DeleteCard removes a card; its review events cascade with it.
func (s *Service) DeleteCard(ctx context.Context, ownerID, cardID uuid.UUID) error {
	if _, err := s.ownedCard(ctx, ownerID, cardID); err != nil {
		return err
	}
	if err := s.store.DeleteCard(ctx, cardID); err != nil {
		return fmt.Errorf("delete card %s: %w", cardID, err)
	}
	return nil
}

package srs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocadue/vocadue/internal/apperr"
	"github.com/vocadue/vocadue/internal/domain"
)

func TestCreateCardValidation(t *testing.T) {
	svc, _ := newTestService(1, 7)
	owner := newOwner()
	ctx := context.Background()

	_, err := svc.CreateCard(ctx, owner, NewCard{Word: "lonely"}, enrolledAt)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	_, err = svc.CreateCard(ctx, owner, NewCard{Definition: "a word with no word"}, enrolledAt)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
}

func TestCreateCardEnrollsAtCurveStart(t *testing.T) {
	svc, _ := newTestService(3, 10)
	owner := newOwner()
	ctx := context.Background()

	card, err := svc.CreateCard(ctx, owner, NewCard{Word: "w", Definition: "d"}, enrolledAt)
	require.NoError(t, err)
	assert.Equal(t, domain.NewStep, card.ReviewStep)
	assert.Equal(t, domain.StatusActive, card.ReviewStatus)
	assert.Equal(t, enrolledAt.AddDate(0, 0, 3), card.NextReview)
	assert.Nil(t, card.LastReviewed)
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/apperr"
	"github.com/vocadue/vocadue/internal/domain"
)

const cardColumns = `id, owner_id, list_id, word, definition, synonym, antonym, example, notes,
	review_step, last_reviewed, next_review, success_count, failure_count, review_status, created_at, version`

// InsertCard inserts a newly enrolled card.
func (db *DB) InsertCard(ctx context.Context, card *domain.Card) error {
	var listID sql.NullString
	if card.ListID != nil {
		listID = sql.NullString{String: card.ListID.String(), Valid: true}
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		card.ID.String(),
		card.OwnerID.String(),
		listID,
		card.Word,
		card.Definition,
		card.Synonym,
		card.Antonym,
		card.Example,
		card.Notes,
		card.ReviewStep,
		nullTime(card.LastReviewed),
		card.NextReview,
		card.SuccessCount,
		card.FailureCount,
		string(card.ReviewStatus),
		card.CreatedAt,
		card.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card %s: %w", card.ID, err)
	}
	return nil
}

// GetCard retrieves a card by id. Returns (nil, nil) when not found.
func (db *DB) GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards WHERE id = ?
	`, id.String())

	card, err := scanCard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Card not found
		}
		return nil, fmt.Errorf("failed to get card %s: %w", id, err)
	}
	return card, nil
}

// ListCards retrieves all cards for an owner, newest first.
func (db *DB) ListCards(ctx context.Context, ownerID uuid.UUID) ([]domain.Card, error) {
	return db.listCards(ctx, `
		SELECT `+cardColumns+`
		FROM cards WHERE owner_id = ?
		ORDER BY created_at DESC
	`, ownerID.String())
}

// ListActiveCards retrieves the owner's cards with ACTIVE review status.
func (db *DB) ListActiveCards(ctx context.Context, ownerID uuid.UUID) ([]domain.Card, error) {
	return db.listCards(ctx, `
		SELECT `+cardColumns+`
		FROM cards WHERE owner_id = ? AND review_status = ?
		ORDER BY next_review ASC
	`, ownerID.String(), string(domain.StatusActive))
}

func (db *DB) listCards(ctx context.Context, query string, args ...any) ([]domain.Card, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

// UpdateCard rewrites a card's mutable fields unconditionally. Used by
// lifecycle operations (pause, complete, reset); review outcomes go through
// ApplyOutcome instead.
func (db *DB) UpdateCard(ctx context.Context, card *domain.Card) error {
	_, err := db.conn.ExecContext(ctx, `
		UPDATE cards
		SET word = ?, definition = ?, synonym = ?, antonym = ?, example = ?, notes = ?,
			review_step = ?, last_reviewed = ?, next_review = ?,
			success_count = ?, failure_count = ?, review_status = ?, version = version + 1
		WHERE id = ?
	`,
		card.Word,
		card.Definition,
		card.Synonym,
		card.Antonym,
		card.Example,
		card.Notes,
		card.ReviewStep,
		nullTime(card.LastReviewed),
		card.NextReview,
		card.SuccessCount,
		card.FailureCount,
		string(card.ReviewStatus),
		card.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", card.ID, err)
	}
	card.Version++
	return nil
}

// DeleteCard removes a card; its review events cascade via the foreign key.
func (db *DB) DeleteCard(ctx context.Context, id uuid.UUID) error {
	_, err := db.conn.ExecContext(ctx, `
		DELETE FROM cards
		WHERE id = ?
	`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return nil
}

// ApplyOutcome appends a review event and updates the card's review state
// in one transaction. The card update is guarded by the version the caller
// read; losing the race rolls the event back and reports a conflict.
func (db *DB) ApplyOutcome(ctx context.Context, card *domain.Card, event *domain.ReviewEvent) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin outcome transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO review_events (id, card_id, owner_id, is_success, time_spent_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		event.ID.String(),
		event.CardID.String(),
		event.OwnerID.String(),
		event.IsSuccess,
		nullInt64(event.TimeSpentMS),
		event.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert review event for card %s: %w", card.ID, err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE cards
		SET review_step = ?, last_reviewed = ?, next_review = ?,
			success_count = ?, failure_count = ?, review_status = ?, version = version + 1
		WHERE id = ? AND version = ?
	`,
		card.ReviewStep,
		nullTime(card.LastReviewed),
		card.NextReview,
		card.SuccessCount,
		card.FailureCount,
		string(card.ReviewStatus),
		card.ID.String(),
		card.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update card state for %s: %w", card.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for card %s: %w", card.ID, err)
	}
	if affected == 0 {
		return apperr.VersionConflict(fmt.Sprintf("card %s was updated concurrently", card.ID))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit outcome for card %s: %w", card.ID, err)
	}
	card.Version++
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (*domain.Card, error) {
	var (
		card         domain.Card
		id, owner    string
		listID       sql.NullString
		lastReviewed sql.NullTime
		status       string
	)
	err := row.Scan(
		&id,
		&owner,
		&listID,
		&card.Word,
		&card.Definition,
		&card.Synonym,
		&card.Antonym,
		&card.Example,
		&card.Notes,
		&card.ReviewStep,
		&lastReviewed,
		&card.NextReview,
		&card.SuccessCount,
		&card.FailureCount,
		&status,
		&card.CreatedAt,
		&card.Version,
	)
	if err != nil {
		return nil, err
	}

	card.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid card id %q: %w", id, err)
	}
	card.OwnerID, err = uuid.Parse(owner)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", owner, err)
	}
	if listID.Valid {
		parsed, err := uuid.Parse(listID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid list id %q: %w", listID.String, err)
		}
		card.ListID = &parsed
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		card.LastReviewed = &t
	}
	card.ReviewStatus = domain.ReviewStatus(status)
	return &card, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

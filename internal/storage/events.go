package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/domain"
)

// ListEventsBetween retrieves an owner's review events with created_at in
// the half-open range [from, to).
func (db *DB) ListEventsBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.ReviewEvent, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, card_id, owner_id, is_success, time_spent_ms, created_at
		FROM review_events
		WHERE owner_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at ASC
	`, ownerID.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list review events: %w", err)
	}
	defer rows.Close()

	var events []domain.ReviewEvent
	for rows.Next() {
		var (
			ev        domain.ReviewEvent
			id, card  string
			owner     string
			timeSpent sql.NullInt64
		)
		if err := rows.Scan(&id, &card, &owner, &ev.IsSuccess, &timeSpent, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review event row: %w", err)
		}
		ev.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid event id %q: %w", id, err)
		}
		ev.CardID, err = uuid.Parse(card)
		if err != nil {
			return nil, fmt.Errorf("invalid event card id %q: %w", card, err)
		}
		ev.OwnerID, err = uuid.Parse(owner)
		if err != nil {
			return nil, fmt.Errorf("invalid event owner id %q: %w", owner, err)
		}
		if timeSpent.Valid {
			v := timeSpent.Int64
			ev.TimeSpentMS = &v
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// ListEventTimes retrieves the timestamps of all of an owner's review
// events. Used by the streak tracker, which only needs the calendar days.
func (db *DB) ListEventTimes(ctx context.Context, ownerID uuid.UUID) ([]time.Time, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT created_at
		FROM review_events
		WHERE owner_id = ?
		ORDER BY created_at ASC
	`, ownerID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list review event times: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan review event time: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

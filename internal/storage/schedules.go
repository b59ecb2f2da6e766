package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/vocadue/vocadue/internal/domain"
)

// GetSchedule retrieves the owner's stored interval curve.
// Returns (nil, nil) when the owner has no stored schedule.
func (db *DB) GetSchedule(ctx context.Context, ownerID uuid.UUID) (*domain.ReviewSchedule, error) {
	var (
		s         domain.ReviewSchedule
		intervals string
	)
	row := db.conn.QueryRowContext(ctx, `
		SELECT name, description, intervals, created_at, updated_at
		FROM review_schedules WHERE owner_id = ?
	`, ownerID.String())

	err := row.Scan(&s.Name, &s.Description, &intervals, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Schedule not found
		}
		return nil, fmt.Errorf("failed to get schedule for owner %s: %w", ownerID, err)
	}

	if err := json.Unmarshal([]byte(intervals), &s.Intervals); err != nil {
		return nil, fmt.Errorf("failed to decode intervals for owner %s: %w", ownerID, err)
	}
	s.OwnerID = ownerID
	return &s, nil
}

// UpsertSchedule replaces the owner's interval curve atomically.
func (db *DB) UpsertSchedule(ctx context.Context, schedule *domain.ReviewSchedule) error {
	intervals, err := json.Marshal(schedule.Intervals)
	if err != nil {
		return fmt.Errorf("failed to encode intervals: %w", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO review_schedules (owner_id, name, description, intervals, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			intervals = excluded.intervals,
			updated_at = excluded.updated_at
	`,
		schedule.OwnerID.String(),
		schedule.Name,
		schedule.Description,
		string(intervals),
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule for owner %s: %w", schedule.OwnerID, err)
	}
	return nil
}

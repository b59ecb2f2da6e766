package storage

const schema = `
PRAGMA foreign_keys = ON;

-- The 'cards' table stores each vocabulary card together with its review state.
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    list_id TEXT,
    word TEXT NOT NULL,
    definition TEXT NOT NULL,
    synonym TEXT NOT NULL DEFAULT '',
    antonym TEXT NOT NULL DEFAULT '',
    example TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    review_step INTEGER NOT NULL DEFAULT -1,
    last_reviewed DATETIME,
    next_review DATETIME NOT NULL,
    success_count INTEGER NOT NULL DEFAULT 0,
    failure_count INTEGER NOT NULL DEFAULT 0,
    review_status TEXT NOT NULL DEFAULT 'ACTIVE',
    created_at DATETIME NOT NULL,
    version INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_cards_owner_status ON cards(owner_id, review_status);

-- The 'review_events' table is an append-only log of review outcomes.
CREATE TABLE IF NOT EXISTS review_events (
    id TEXT PRIMARY KEY,
    card_id TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    is_success INTEGER NOT NULL,
    time_spent_ms INTEGER,
    created_at DATETIME NOT NULL,

    FOREIGN KEY(card_id) REFERENCES cards(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_review_events_owner_created ON review_events(owner_id, created_at);

-- The 'review_schedules' table holds one interval curve per owner.
-- Intervals are stored as a JSON array of day counts.
CREATE TABLE IF NOT EXISTS review_schedules (
    owner_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    intervals TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);
`

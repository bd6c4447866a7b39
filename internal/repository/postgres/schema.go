package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the idempotent DDL applied at startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		role          TEXT NOT NULL,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS driver_profiles (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL UNIQUE REFERENCES users(id),
		phone            TEXT NOT NULL DEFAULT '',
		experience_years INTEGER NOT NULL DEFAULT 0,
		bio              TEXT NOT NULL DEFAULT '',
		documents_status TEXT NOT NULL DEFAULT 'pending',
		is_verified      BOOLEAN NOT NULL DEFAULT FALSE,
		rating           DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_trips      INTEGER NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS driver_documents (
		id                TEXT PRIMARY KEY,
		profile_id        TEXT NOT NULL REFERENCES driver_profiles(id),
		document_type     TEXT NOT NULL,
		file_path         TEXT NOT NULL,
		side              TEXT NOT NULL DEFAULT '',
		uploaded_at       TIMESTAMPTZ NOT NULL,
		status            TEXT NOT NULL DEFAULT 'pending',
		reviewed_by       TEXT,
		reviewed_at       TIMESTAMPTZ,
		rejection_reason  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS cars (
		id                   TEXT PRIMARY KEY,
		profile_id           TEXT NOT NULL REFERENCES driver_profiles(id),
		make                 TEXT NOT NULL,
		model                TEXT NOT NULL,
		year                 INTEGER NOT NULL,
		color                TEXT NOT NULL,
		license_plate        TEXT NOT NULL UNIQUE,
		capacity             INTEGER NOT NULL,
		has_air_conditioning BOOLEAN NOT NULL DEFAULT TRUE,
		has_wifi             BOOLEAN NOT NULL DEFAULT FALSE,
		created_at           TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id               TEXT PRIMARY KEY,
		client_id        TEXT NOT NULL REFERENCES users(id),
		driver_id        TEXT REFERENCES users(id),
		pickup_location  TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		pickup_time      TIMESTAMPTZ NOT NULL,
		passengers_count INTEGER NOT NULL,
		luggage_count    INTEGER NOT NULL,
		client_price     DOUBLE PRECISION NOT NULL,
		final_price      DOUBLE PRECISION,
		status           TEXT NOT NULL DEFAULT 'pending',
		created_at       TIMESTAMPTZ NOT NULL,
		accepted_at      TIMESTAMPTZ,
		completed_at     TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS driver_reviews (
		id         TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL REFERENCES driver_profiles(id),
		client_id  TEXT NOT NULL REFERENCES users(id),
		order_id   TEXT NOT NULL UNIQUE REFERENCES orders(id),
		rating     INTEGER NOT NULL,
		comment    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_actions (
		id             TEXT PRIMARY KEY,
		admin_id       TEXT NOT NULL REFERENCES users(id),
		action_type    TEXT NOT NULL,
		target_user_id TEXT,
		details        TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_client ON orders(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_driver ON orders(driver_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_profile ON driver_documents(profile_id)`,
}

// Migrate applies the schema. Statements are idempotent so it is safe to
// run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

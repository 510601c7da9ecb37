package database

import (
	"context"
	"fmt"
)

// schema statements are idempotent; Migrate runs at startup and via the
// migrate command (원본 백엔드의 create_all 동작과 동일)
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              BIGSERIAL PRIMARY KEY,
		username        VARCHAR(50) NOT NULL UNIQUE,
		email           VARCHAR(255) NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		is_verified     BOOLEAN NOT NULL DEFAULT FALSE,
		last_login      TIMESTAMPTZ,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS widgets (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name       VARCHAR(100) NOT NULL,
		type       VARCHAR(50) NOT NULL DEFAULT 'default',
		config     TEXT,
		layout     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_widgets_user_id ON widgets (user_id)`,
}

// Migrate creates the application tables if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

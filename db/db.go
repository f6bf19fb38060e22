package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and bootstraps the schema.
func Open(dsn string) (*sql.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	sqldb.SetMaxOpenConns(20)
	sqldb.SetMaxIdleConns(10)

	if err := createTables(sqldb); err != nil {
		return nil, err
	}
	return sqldb, nil
}

func createTables(sqldb *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clubs (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			admin_email TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'user',
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			club_id UUID REFERENCES clubs(id)
		)`,
		// Events live in Mongo; event_id is the cross-store UUID key.
		`CREATE TABLE IF NOT EXISTS registrations (
			id UUID PRIMARY KEY,
			event_id UUID NOT NULL,
			user_id BIGINT NOT NULL REFERENCES profiles(id),
			email TEXT NOT NULL,
			message TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT,
			payment_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		// One active (non-rejected) registration per user per event.
		`CREATE UNIQUE INDEX IF NOT EXISTS registrations_active_uniq
			ON registrations (user_id, event_id) WHERE status <> 'rejected'`,
		`CREATE INDEX IF NOT EXISTS registrations_event_created_idx
			ON registrations (event_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := sqldb.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

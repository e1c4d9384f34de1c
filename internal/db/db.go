package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL CHECK (role IN ('admin','editor','viewer')) DEFAULT 'editor'
			)`,
		`CREATE TABLE IF NOT EXISTS friend_requests (
			id SERIAL PRIMARY KEY,
			sender_id INT NOT NULL REFERENCES users(id),
			receiver_id INT NOT NULL REFERENCES users(id),
			status TEXT NOT NULL CHECK (status IN ('pending','accepted','rejected')) DEFAULT 'pending',
			sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (sender_id, receiver_id)
			)`,
		`CREATE TABLE IF NOT EXISTS block_list (
			id SERIAL PRIMARY KEY,
			blocker_id INT NOT NULL REFERENCES users(id),
			blocked_id INT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (blocker_id, blocked_id)
			)`,
		`CREATE INDEX IF NOT EXISTS friend_requests_sender_sent_at_idx
			ON friend_requests (sender_id, sent_at)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}

package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates all tables the service needs. Idempotent so it can run
// on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id          UUID PRIMARY KEY,
	title       TEXT NOT NULL,
	date        DATE NOT NULL,
	location    TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	seats       INTEGER NOT NULL DEFAULT 0 CHECK (seats >= 0),
	category    TEXT NOT NULL DEFAULT 'Tech',
	price       DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (price >= 0),
	image_url   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	ticket_id      UUID PRIMARY KEY,
	short_code     CHAR(6) NOT NULL UNIQUE,
	event_id       UUID NOT NULL REFERENCES events(id),
	user_id        UUID REFERENCES users(id),
	name           TEXT NOT NULL,
	email          TEXT NOT NULL,
	seats          INTEGER NOT NULL CHECK (seats > 0),
	payment_status TEXT NOT NULL DEFAULT 'pending',
	payment_method TEXT,
	created_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_event_id ON bookings(event_id);
CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id);

CREATE TABLE IF NOT EXISTS expenses (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL REFERENCES users(id),
	title      TEXT NOT NULL,
	amount     DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
	category   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id);
`

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

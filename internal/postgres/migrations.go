package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The primary key on reservation_dates.day is what makes double booking
// impossible: two overlapping inserts cannot both commit, whatever the
// availability pre-check saw.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS reservations (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	number_of_people INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reservation_dates (
	day DATE PRIMARY KEY,
	reservation_id TEXT NOT NULL REFERENCES reservations(id) ON DELETE CASCADE,
	position INT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reservation_dates_reservation ON reservation_dates(reservation_id);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}

package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/reservd/internal/reservation"
)

// ReservationRepo implements reservation.Store on Postgres.
type ReservationRepo struct{ pool *pgxpool.Pool }

func NewReservationRepo(pool *pgxpool.Pool) *ReservationRepo {
	return &ReservationRepo{pool: pool}
}

// newID mints a 24-character hex identifier from 12 random bytes.
func newID() (string, error) {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

func (r *ReservationRepo) FindOverlap(ctx context.Context, dates []string) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT DISTINCT r.id, r.email, r.first_name, r.last_name, r.number_of_people
		FROM reservations r
		JOIN reservation_dates d ON d.reservation_id = r.id
		WHERE d.day = ANY($1::date[])
		LIMIT 1
	`, dates)

	var res reservation.Reservation
	if err := row.Scan(&res.ID, &res.Email, &res.FirstName, &res.LastName, &res.NumberOfPeople); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadDates(ctx, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Insert writes the reservation row and all of its day rows in one
// transaction. A day already held by another reservation violates the
// primary key and the whole insert is rejected as a date clash.
func (r *ReservationRepo) Insert(ctx context.Context, res reservation.Reservation) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO reservations (id, email, first_name, last_name, number_of_people)
		VALUES ($1, $2, $3, $4, $5)
	`, id, res.Email, res.FirstName, res.LastName, res.NumberOfPeople)
	if err != nil {
		return "", err
	}

	for i, day := range res.Dates {
		_, err = tx.Exec(ctx, `
			INSERT INTO reservation_dates (day, reservation_id, position)
			VALUES ($1::date, $2, $3)
		`, day, id, i)
		if err != nil {
			if isUniqueViolation(err) {
				return "", reservation.ErrDatesUnavailable
			}
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return "", reservation.ErrDatesUnavailable
		}
		return "", err
	}
	return id, nil
}

func (r *ReservationRepo) FindByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, number_of_people
		FROM reservations WHERE id = $1
	`, id)

	var res reservation.Reservation
	if err := row.Scan(&res.ID, &res.Email, &res.FirstName, &res.LastName, &res.NumberOfPeople); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadDates(ctx, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) DeleteByID(ctx context.Context, id, ownerEmail string) (int64, error) {
	var (
		ct  pgconn.CommandTag
		err error
	)
	if ownerEmail == "" {
		ct, err = r.pool.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	} else {
		ct, err = r.pool.Exec(ctx, `DELETE FROM reservations WHERE id = $1 AND email = $2`, id, ownerEmail)
	}
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *ReservationRepo) loadDates(ctx context.Context, res *reservation.Reservation) error {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(day, 'YYYY-MM-DD')
		FROM reservation_dates
		WHERE reservation_id = $1
		ORDER BY position
	`, res.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return err
		}
		res.Dates = append(res.Dates, day)
	}
	return rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

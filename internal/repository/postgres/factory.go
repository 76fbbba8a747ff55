package postgres

import (
	"errors"

	repo "github.com/KNehe/swimmy/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users    repo.Users
	Pools    repo.Pools
	Bookings repo.Bookings
	Ratings  repo.Ratings
	Uploads  repo.Uploads
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    &usersRepo{pool},
		Pools:    &poolsRepo{pool},
		Bookings: &bookingsRepo{pool},
		Ratings:  &ratingsRepo{pool},
		Uploads:  &uploadsRepo{pool},
	}
}

const uniqueViolation = "23505"

// translate maps driver errors to repository errors so callers never see
// pgx internals.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &repo.DuplicateError{Constraint: pgErr.ConstraintName}
	}
	return err
}

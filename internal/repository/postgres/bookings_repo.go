package postgres

import (
	"context"

	"github.com/KNehe/swimmy/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type bookingsRepo struct{ pool *pgxpool.Pool }

const bookingSelect = `
SELECT b.id, b.user_id, b.pool_id, b.total_amount, b.start_datetime, b.end_datetime,
       b.slug, b.created_at, b.updated_by, b.updated_at,
       p.name, p.slug, u.username
  FROM bookings b
  JOIN pools p ON p.id = b.pool_id
  JOIN users u ON u.id = b.user_id`

func (r *bookingsRepo) Create(b models.Booking) (models.Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO bookings(id, user_id, pool_id, total_amount, start_datetime, end_datetime, slug)
		 VALUES($1,$2,$3,$4,$5,$6,$7)`,
		b.ID, b.UserID, b.PoolID, b.TotalAmount, b.StartDatetime, b.EndDatetime, b.Slug,
	)
	if err != nil {
		return models.Booking{}, translate(err)
	}
	return r.getByID(b.ID)
}

func (r *bookingsRepo) getByID(id string) (models.Booking, error) {
	var b models.Booking
	err := r.pool.QueryRow(context.Background(), bookingSelect+` WHERE b.id=$1`, id).
		Scan(&b.ID, &b.UserID, &b.PoolID, &b.TotalAmount, &b.StartDatetime, &b.EndDatetime,
			&b.Slug, &b.CreatedAt, &b.UpdatedBy, &b.UpdatedAt,
			&b.PoolName, &b.PoolSlug, &b.UserName)
	return b, translate(err)
}

func (r *bookingsRepo) GetBySlug(slug string) (models.Booking, error) {
	var b models.Booking
	err := r.pool.QueryRow(context.Background(), bookingSelect+` WHERE b.slug=$1`, slug).
		Scan(&b.ID, &b.UserID, &b.PoolID, &b.TotalAmount, &b.StartDatetime, &b.EndDatetime,
			&b.Slug, &b.CreatedAt, &b.UpdatedBy, &b.UpdatedAt,
			&b.PoolName, &b.PoolSlug, &b.UserName)
	return b, translate(err)
}

func (r *bookingsRepo) List(limit, offset int) ([]models.Booking, error) {
	return r.list(bookingSelect+` ORDER BY b.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *bookingsRepo) ListByUser(userID string, limit, offset int) ([]models.Booking, error) {
	return r.list(bookingSelect+` WHERE b.user_id=$3 ORDER BY b.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset, userID)
}

func (r *bookingsRepo) list(q string, args ...any) ([]models.Booking, error) {
	rows, err := r.pool.Query(context.Background(), q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.PoolID, &b.TotalAmount, &b.StartDatetime, &b.EndDatetime,
			&b.Slug, &b.CreatedAt, &b.UpdatedBy, &b.UpdatedAt,
			&b.PoolName, &b.PoolSlug, &b.UserName); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *bookingsRepo) Update(b models.Booking) (models.Booking, error) {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE bookings
		    SET pool_id=$2, total_amount=$3, start_datetime=$4, end_datetime=$5,
		        slug=$6, updated_by=$7, updated_at=$8
		  WHERE id=$1`,
		b.ID, b.PoolID, b.TotalAmount, b.StartDatetime, b.EndDatetime, b.Slug, b.UpdatedBy, b.UpdatedAt,
	)
	if err != nil {
		return models.Booking{}, translate(err)
	}
	return r.getByID(b.ID)
}

func (r *bookingsRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM bookings WHERE id=$1`, id)
	return translate(err)
}

package postgres

import (
	"context"

	"github.com/KNehe/swimmy/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ratingsRepo struct{ pool *pgxpool.Pool }

const ratingSelect = `
SELECT rt.id, rt.user_id, rt.pool_id, rt.value, rt.slug, rt.created_at, rt.updated_at, p.slug
  FROM ratings rt
  JOIN pools p ON p.id = rt.pool_id`

func (r *ratingsRepo) Create(rt models.Rating) (models.Rating, error) {
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO ratings(id, user_id, pool_id, value, slug) VALUES($1,$2,$3,$4,$5)`,
		rt.ID, rt.UserID, rt.PoolID, rt.Value, rt.Slug,
	)
	if err != nil {
		return models.Rating{}, translate(err)
	}
	return r.getByID(rt.ID)
}

func (r *ratingsRepo) getByID(id string) (models.Rating, error) {
	var rt models.Rating
	err := r.pool.QueryRow(context.Background(), ratingSelect+` WHERE rt.id=$1`, id).
		Scan(&rt.ID, &rt.UserID, &rt.PoolID, &rt.Value, &rt.Slug, &rt.CreatedAt, &rt.UpdatedAt, &rt.PoolSlug)
	return rt, translate(err)
}

func (r *ratingsRepo) GetBySlug(slug string) (models.Rating, error) {
	var rt models.Rating
	err := r.pool.QueryRow(context.Background(), ratingSelect+` WHERE rt.slug=$1`, slug).
		Scan(&rt.ID, &rt.UserID, &rt.PoolID, &rt.Value, &rt.Slug, &rt.CreatedAt, &rt.UpdatedAt, &rt.PoolSlug)
	return rt, translate(err)
}

func (r *ratingsRepo) List(limit, offset int) ([]models.Rating, error) {
	return r.list(ratingSelect+` ORDER BY rt.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *ratingsRepo) ListByUser(userID string, limit, offset int) ([]models.Rating, error) {
	return r.list(ratingSelect+` WHERE rt.user_id=$3 ORDER BY rt.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset, userID)
}

func (r *ratingsRepo) list(q string, args ...any) ([]models.Rating, error) {
	rows, err := r.pool.Query(context.Background(), q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []models.Rating
	for rows.Next() {
		var rt models.Rating
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.PoolID, &rt.Value, &rt.Slug, &rt.CreatedAt, &rt.UpdatedAt, &rt.PoolSlug); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *ratingsRepo) Update(rt models.Rating) (models.Rating, error) {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE ratings SET value=$2, slug=$3, updated_at=now() WHERE id=$1`,
		rt.ID, rt.Value, rt.Slug,
	)
	if err != nil {
		return models.Rating{}, translate(err)
	}
	return r.getByID(rt.ID)
}

func (r *ratingsRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM ratings WHERE id=$1`, id)
	return translate(err)
}

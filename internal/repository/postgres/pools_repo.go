package postgres

import (
	"context"

	"github.com/KNehe/swimmy/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type poolsRepo struct{ pool *pgxpool.Pool }

func (r *poolsRepo) Create(p models.Pool) (models.Pool, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO pools(id, name, location, day_price, thumbnail_url, image_url,
		        width, length, depth_shallow_end, depth_deep_end, maximum_people,
		        slug, created_by)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.Name, p.Location, p.DayPrice, p.ThumbnailURL, p.ImageURL,
		p.Width, p.Length, p.DepthShallowEnd, p.DepthDeepEnd, p.MaximumPeople,
		p.Slug, p.CreatedBy,
	)
	if err != nil {
		return models.Pool{}, translate(err)
	}
	return r.getByID(p.ID)
}

func (r *poolsRepo) getByID(id string) (models.Pool, error) {
	var p models.Pool
	err := r.pool.QueryRow(context.Background(),
		`SELECT p.id, p.name, p.location, p.day_price, p.thumbnail_url, p.image_url,
		        p.width, p.length, p.depth_shallow_end, p.depth_deep_end, p.maximum_people,
		        p.slug, p.created_by, p.created_at, p.updated_by, p.updated_at,
		        AVG(rt.value)
		   FROM pools p LEFT JOIN ratings rt ON rt.pool_id = p.id
		  WHERE p.id=$1
		  GROUP BY p.id`, id,
	).Scan(&p.ID, &p.Name, &p.Location, &p.DayPrice, &p.ThumbnailURL, &p.ImageURL,
		&p.Width, &p.Length, &p.DepthShallowEnd, &p.DepthDeepEnd, &p.MaximumPeople,
		&p.Slug, &p.CreatedBy, &p.CreatedAt, &p.UpdatedBy, &p.UpdatedAt,
		&p.AverageRating)
	return p, translate(err)
}

func (r *poolsRepo) GetBySlug(slug string) (models.Pool, error) {
	var p models.Pool
	err := r.pool.QueryRow(context.Background(),
		`SELECT p.id, p.name, p.location, p.day_price, p.thumbnail_url, p.image_url,
		        p.width, p.length, p.depth_shallow_end, p.depth_deep_end, p.maximum_people,
		        p.slug, p.created_by, p.created_at, p.updated_by, p.updated_at,
		        AVG(rt.value)
		   FROM pools p LEFT JOIN ratings rt ON rt.pool_id = p.id
		  WHERE p.slug=$1
		  GROUP BY p.id`, slug,
	).Scan(&p.ID, &p.Name, &p.Location, &p.DayPrice, &p.ThumbnailURL, &p.ImageURL,
		&p.Width, &p.Length, &p.DepthShallowEnd, &p.DepthDeepEnd, &p.MaximumPeople,
		&p.Slug, &p.CreatedBy, &p.CreatedAt, &p.UpdatedBy, &p.UpdatedAt,
		&p.AverageRating)
	return p, translate(err)
}

// List annotates each pool with its average rating in the same grouped
// query so listing N pools never issues N rating lookups.
func (r *poolsRepo) List(limit, offset int) ([]models.Pool, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT p.id, p.name, p.location, p.day_price, p.thumbnail_url, p.image_url,
		        p.width, p.length, p.depth_shallow_end, p.depth_deep_end, p.maximum_people,
		        p.slug, p.created_by, p.created_at, p.updated_by, p.updated_at,
		        AVG(rt.value)
		   FROM pools p LEFT JOIN ratings rt ON rt.pool_id = p.id
		  GROUP BY p.id
		  ORDER BY p.created_at DESC
		  LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []models.Pool
	for rows.Next() {
		var p models.Pool
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.DayPrice, &p.ThumbnailURL, &p.ImageURL,
			&p.Width, &p.Length, &p.DepthShallowEnd, &p.DepthDeepEnd, &p.MaximumPeople,
			&p.Slug, &p.CreatedBy, &p.CreatedAt, &p.UpdatedBy, &p.UpdatedAt,
			&p.AverageRating); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *poolsRepo) Update(p models.Pool) (models.Pool, error) {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE pools
		    SET name=$2, location=$3, day_price=$4, thumbnail_url=$5, image_url=$6,
		        width=$7, length=$8, depth_shallow_end=$9, depth_deep_end=$10,
		        maximum_people=$11, slug=$12, updated_by=$13, updated_at=$14
		  WHERE id=$1`,
		p.ID, p.Name, p.Location, p.DayPrice, p.ThumbnailURL, p.ImageURL,
		p.Width, p.Length, p.DepthShallowEnd, p.DepthDeepEnd,
		p.MaximumPeople, p.Slug, p.UpdatedBy, p.UpdatedAt,
	)
	if err != nil {
		return models.Pool{}, translate(err)
	}
	return r.getByID(p.ID)
}

func (r *poolsRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM pools WHERE id=$1`, id)
	return translate(err)
}

func (r *poolsRepo) AverageRating(poolID string) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(context.Background(),
		`SELECT AVG(value) FROM ratings WHERE pool_id=$1`, poolID,
	).Scan(&avg)
	return avg, translate(err)
}

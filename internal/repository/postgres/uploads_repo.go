package postgres

import (
	"context"

	"github.com/KNehe/swimmy/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type uploadsRepo struct{ pool *pgxpool.Pool }

func (r *uploadsRepo) Create(f models.FileUpload) (models.FileUpload, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO uploads(id, file_name, path, uploaded_by) VALUES($1,$2,$3,$4)`,
		f.ID, f.FileName, f.Path, f.UploadedBy,
	)
	if err != nil {
		return models.FileUpload{}, translate(err)
	}
	return r.GetByID(f.ID)
}

func (r *uploadsRepo) GetByID(id string) (models.FileUpload, error) {
	var f models.FileUpload
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, file_name, path, uploaded_by, uploaded_at FROM uploads WHERE id=$1`, id,
	).Scan(&f.ID, &f.FileName, &f.Path, &f.UploadedBy, &f.UploadedAt)
	return f, translate(err)
}

func (r *uploadsRepo) List(limit, offset int) ([]models.FileUpload, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, file_name, path, uploaded_by, uploaded_at
		   FROM uploads ORDER BY uploaded_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []models.FileUpload
	for rows.Next() {
		var f models.FileUpload
		if err := rows.Scan(&f.ID, &f.FileName, &f.Path, &f.UploadedBy, &f.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

package services

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/KNehe/swimmy/internal/api/validate"
	"github.com/KNehe/swimmy/internal/domain"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/policy"
	repo "github.com/KNehe/swimmy/internal/repository"
	"github.com/google/uuid"
)

type UploadService struct {
	uploads repo.Uploads
	dir     string
}

func NewUploadService(uploads repo.Uploads, dir string) *UploadService {
	return &UploadService{uploads: uploads, dir: dir}
}

// Save stores the file on disk under a generated name and records the
// metadata row. Admin only.
func (s *UploadService) Save(caller policy.Caller, fileName string, src io.Reader) (models.FileUpload, error) {
	if err := policy.Check(caller, policy.Uploads, policy.Create, ""); err != nil {
		return models.FileUpload{}, err
	}
	if ef := validate.Required("file_name", fileName); ef != nil {
		return models.FileUpload{}, validate.Errs{*ef}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return models.FileUpload{}, err
	}
	path := filepath.Join(s.dir, uuid.NewString()+filepath.Ext(fileName))

	dst, err := os.Create(path)
	if err != nil {
		return models.FileUpload{}, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return models.FileUpload{}, err
	}

	uploadedBy := caller.ID
	return s.uploads.Create(models.FileUpload{
		FileName:   fileName,
		Path:       path,
		UploadedBy: &uploadedBy,
	})
}

func (s *UploadService) Get(caller policy.Caller, id string) (models.FileUpload, error) {
	if err := policy.Check(caller, policy.Uploads, policy.Retrieve, ""); err != nil {
		return models.FileUpload{}, err
	}
	f, err := s.uploads.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.FileUpload{}, domain.ErrNotFound
		}
		return models.FileUpload{}, err
	}
	return f, nil
}

func (s *UploadService) List(caller policy.Caller, limit, offset int) ([]models.FileUpload, error) {
	if err := policy.Check(caller, policy.Uploads, policy.List, ""); err != nil {
		return nil, err
	}
	return s.uploads.List(limit, offset)
}

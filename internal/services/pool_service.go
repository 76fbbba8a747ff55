package services

import (
	"errors"
	"strings"
	"time"

	"github.com/KNehe/swimmy/internal/api/validate"
	"github.com/KNehe/swimmy/internal/domain"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/policy"
	repo "github.com/KNehe/swimmy/internal/repository"
	"github.com/KNehe/swimmy/internal/slug"
)

type PoolInput struct {
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	DayPrice        float64  `json:"day_price"`
	ThumbnailURL    *string  `json:"thumbnail_url"`
	ImageURL        *string  `json:"image_url"`
	Width           float64  `json:"width"`
	Length          float64  `json:"length"`
	DepthShallowEnd float64  `json:"depth_shallow_end"`
	DepthDeepEnd    float64  `json:"depth_deep_end"`
	MaximumPeople   int      `json:"maximum_people"`
}

func (in PoolInput) validate() validate.Errs {
	var errs validate.Errs
	if ef := validate.Required("name", in.Name); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.Required("location", in.Location); ef != nil {
		errs = append(errs, *ef)
	}
	if in.DayPrice <= 0 {
		errs = append(errs, validate.ErrField{Field: "day_price", Msg: "must be greater than 0"})
	}
	if in.MaximumPeople <= 0 {
		errs = append(errs, validate.ErrField{Field: "maximum_people", Msg: "must be greater than 0"})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type PoolService struct {
	pools repo.Pools
}

func NewPoolService(pools repo.Pools) *PoolService {
	return &PoolService{pools: pools}
}

func (s *PoolService) Create(caller policy.Caller, in PoolInput) (models.Pool, error) {
	if err := policy.Check(caller, policy.Pools, policy.Create, ""); err != nil {
		return models.Pool{}, err
	}
	if errs := in.validate(); errs != nil {
		return models.Pool{}, errs
	}

	p := models.Pool{
		Name:            strings.TrimSpace(in.Name),
		Location:        in.Location,
		DayPrice:        in.DayPrice,
		ThumbnailURL:    in.ThumbnailURL,
		ImageURL:        in.ImageURL,
		Width:           in.Width,
		Length:          in.Length,
		DepthShallowEnd: in.DepthShallowEnd,
		DepthDeepEnd:    in.DepthDeepEnd,
		MaximumPeople:   in.MaximumPeople,
		CreatedBy:       caller.ID,
	}
	p.Slug = slug.ForPool(p.Name)

	created, err := s.pools.Create(p)
	if err != nil {
		if _, ok := repo.IsDuplicate(err); ok {
			return models.Pool{}, validate.Errs{{Field: "name", Msg: "pool with this name already exists."}}
		}
		return models.Pool{}, err
	}
	return created, nil
}

func (s *PoolService) Get(slugKey string) (models.Pool, error) {
	p, err := s.pools.GetBySlug(slugKey)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Pool{}, domain.ErrNotFound
		}
		return models.Pool{}, err
	}
	return p, nil
}

// List returns pools newest first, each carrying its average rating from a
// single grouped query.
func (s *PoolService) List(limit, offset int) ([]models.Pool, error) {
	return s.pools.List(limit, offset)
}

func (s *PoolService) Update(caller policy.Caller, slugKey string, in PoolInput) (models.Pool, error) {
	if err := policy.Check(caller, policy.Pools, policy.Update, ""); err != nil {
		return models.Pool{}, err
	}
	if errs := in.validate(); errs != nil {
		return models.Pool{}, errs
	}

	p, err := s.Get(slugKey)
	if err != nil {
		return models.Pool{}, err
	}

	now := time.Now()
	p.Name = strings.TrimSpace(in.Name)
	p.Location = in.Location
	p.DayPrice = in.DayPrice
	p.ThumbnailURL = in.ThumbnailURL
	p.ImageURL = in.ImageURL
	p.Width = in.Width
	p.Length = in.Length
	p.DepthShallowEnd = in.DepthShallowEnd
	p.DepthDeepEnd = in.DepthDeepEnd
	p.MaximumPeople = in.MaximumPeople
	p.UpdatedBy = &caller.ID
	p.UpdatedAt = &now
	// slug is recomputed on every save; a rename moves the resource URL
	p.Slug = slug.ForPool(p.Name)

	updated, err := s.pools.Update(p)
	if err != nil {
		if _, ok := repo.IsDuplicate(err); ok {
			return models.Pool{}, validate.Errs{{Field: "name", Msg: "pool with this name already exists."}}
		}
		return models.Pool{}, err
	}
	return updated, nil
}

func (s *PoolService) Delete(caller policy.Caller, slugKey string) error {
	if err := policy.Check(caller, policy.Pools, policy.Delete, ""); err != nil {
		return err
	}
	p, err := s.Get(slugKey)
	if err != nil {
		return err
	}
	return s.pools.Delete(p.ID)
}

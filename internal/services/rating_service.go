package services

import (
	"errors"

	"github.com/KNehe/swimmy/internal/api/validate"
	"github.com/KNehe/swimmy/internal/domain"
	"github.com/KNehe/swimmy/internal/metrics"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/policy"
	repo "github.com/KNehe/swimmy/internal/repository"
	"github.com/KNehe/swimmy/internal/slug"
)

type RatingService struct {
	ratings repo.Ratings
	pools   repo.Pools
	users   repo.Users
}

func NewRatingService(ratings repo.Ratings, pools repo.Pools, users repo.Users) *RatingService {
	return &RatingService{ratings: ratings, pools: pools, users: users}
}

// Create records the caller's rating of a pool. A second rating of the same
// pool by the same user collides on the slug's unique index; the caller is
// told to request an update instead.
func (s *RatingService) Create(caller policy.Caller, poolSlug string, value float64) (models.Rating, error) {
	if err := policy.Check(caller, policy.Ratings, policy.Create, ""); err != nil {
		return models.Rating{}, err
	}
	if ef := validate.Range("value", value, 0.0, 5.0); ef != nil {
		return models.Rating{}, validate.Errs{*ef}
	}

	pool, err := s.pools.GetBySlug(poolSlug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Rating{}, domain.ErrNotFound
		}
		return models.Rating{}, err
	}

	user, err := s.users.GetByID(caller.ID)
	if err != nil {
		return models.Rating{}, err
	}

	rt := models.Rating{
		UserID: caller.ID,
		PoolID: pool.ID,
		Value:  value,
		Slug:   slug.ForRating(pool.Name, user.Username),

		PoolSlug: pool.Slug,
	}

	created, err := s.ratings.Create(rt)
	if err != nil {
		if _, ok := repo.IsDuplicate(err); ok {
			return models.Rating{}, domain.ErrDuplicateRating
		}
		return models.Rating{}, err
	}
	metrics.RatingsTotal.Inc()
	return created, nil
}

func (s *RatingService) Get(caller policy.Caller, slugKey string) (models.Rating, error) {
	rt, err := s.load(slugKey)
	if err != nil {
		return models.Rating{}, err
	}
	if err := policy.Check(caller, policy.Ratings, policy.Retrieve, rt.UserID); err != nil {
		return models.Rating{}, err
	}
	return rt, nil
}

func (s *RatingService) List(caller policy.Caller, limit, offset int) ([]models.Rating, error) {
	if err := policy.Check(caller, policy.Ratings, policy.List, ""); err != nil {
		return nil, err
	}
	return s.ratings.List(limit, offset)
}

// ForCaller returns the caller's own ratings, newest first.
func (s *RatingService) ForCaller(caller policy.Caller, limit, offset int) ([]models.Rating, error) {
	if caller.Anonymous() {
		return nil, domain.ErrUnknownUser
	}
	return s.ratings.ListByUser(caller.ID, limit, offset)
}

func (s *RatingService) Update(caller policy.Caller, slugKey string, value float64) (models.Rating, error) {
	rt, err := s.load(slugKey)
	if err != nil {
		return models.Rating{}, err
	}
	if err := policy.Check(caller, policy.Ratings, policy.Update, rt.UserID); err != nil {
		return models.Rating{}, err
	}
	if ef := validate.Range("value", value, 0.0, 5.0); ef != nil {
		return models.Rating{}, validate.Errs{*ef}
	}

	rt.Value = value
	updated, err := s.ratings.Update(rt)
	if err != nil {
		return models.Rating{}, err
	}
	return updated, nil
}

func (s *RatingService) Delete(caller policy.Caller, slugKey string) error {
	rt, err := s.load(slugKey)
	if err != nil {
		return err
	}
	if err := policy.Check(caller, policy.Ratings, policy.Delete, rt.UserID); err != nil {
		return err
	}
	return s.ratings.Delete(rt.ID)
}

func (s *RatingService) load(slugKey string) (models.Rating, error) {
	rt, err := s.ratings.GetBySlug(slugKey)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Rating{}, domain.ErrNotFound
		}
		return models.Rating{}, err
	}
	return rt, nil
}

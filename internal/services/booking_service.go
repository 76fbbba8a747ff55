package services

import (
	"errors"
	"time"

	"github.com/KNehe/swimmy/internal/domain"
	"github.com/KNehe/swimmy/internal/metrics"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/policy"
	"github.com/KNehe/swimmy/internal/pricing"
	repo "github.com/KNehe/swimmy/internal/repository"
	"github.com/KNehe/swimmy/internal/slug"
)

type BookingService struct {
	bookings repo.Bookings
	pools    repo.Pools
	users    repo.Users
}

func NewBookingService(bookings repo.Bookings, pools repo.Pools, users repo.Users) *BookingService {
	return &BookingService{bookings: bookings, pools: pools, users: users}
}

// Create books a pool for the caller. Date rules are checked up front with
// every violation accumulated; the slug's unique index resolves concurrent
// duplicates at the store.
func (s *BookingService) Create(caller policy.Caller, poolSlug string, start, end time.Time) (models.Booking, error) {
	if err := policy.Check(caller, policy.Bookings, policy.Create, ""); err != nil {
		return models.Booking{}, err
	}

	pool, err := s.pools.GetBySlug(poolSlug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Booking{}, domain.ErrNotFound
		}
		return models.Booking{}, err
	}

	if errs := pricing.ValidateDateRange(start, end, time.Now()); errs != nil {
		return models.Booking{}, errs
	}

	user, err := s.users.GetByID(caller.ID)
	if err != nil {
		return models.Booking{}, err
	}

	b := models.Booking{
		UserID:        caller.ID,
		PoolID:        pool.ID,
		TotalAmount:   pricing.ComputeTotal(pool.DayPrice, start, end),
		StartDatetime: start,
		EndDatetime:   end,
		Slug:          slug.ForBooking(pool.Name, user.Username),
		PoolName:      pool.Name,
		PoolSlug:      pool.Slug,
		UserName:      user.Username,
	}

	created, err := s.bookings.Create(b)
	if err != nil {
		if _, ok := repo.IsDuplicate(err); ok {
			return models.Booking{}, domain.ErrDuplicateBooking
		}
		return models.Booking{}, err
	}
	metrics.BookingsTotal.Inc()
	return created, nil
}

func (s *BookingService) Get(caller policy.Caller, slugKey string) (models.Booking, error) {
	b, err := s.load(slugKey)
	if err != nil {
		return models.Booking{}, err
	}
	if err := policy.Check(caller, policy.Bookings, policy.Retrieve, b.UserID); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (s *BookingService) List(caller policy.Caller, limit, offset int) ([]models.Booking, error) {
	if err := policy.Check(caller, policy.Bookings, policy.List, ""); err != nil {
		return nil, err
	}
	return s.bookings.List(limit, offset)
}

// RecentForCaller returns the caller's own bookings, newest first.
func (s *BookingService) RecentForCaller(caller policy.Caller, limit, offset int) ([]models.Booking, error) {
	if caller.Anonymous() {
		return nil, domain.ErrUnknownUser
	}
	return s.bookings.ListByUser(caller.ID, limit, offset)
}

// Update reprices the booking against poolSlug, which may point at a
// different pool than the one originally booked. The booking then moves to
// that pool, subject to the same one-booking-per-pool constraint as Create.
func (s *BookingService) Update(caller policy.Caller, slugKey, poolSlug string, start, end time.Time) (models.Booking, error) {
	b, err := s.load(slugKey)
	if err != nil {
		return models.Booking{}, err
	}
	if err := policy.Check(caller, policy.Bookings, policy.Update, b.UserID); err != nil {
		return models.Booking{}, err
	}

	if errs := pricing.ValidateDateRange(start, end, time.Now()); errs != nil {
		return models.Booking{}, errs
	}

	pool, err := s.pools.GetBySlug(poolSlug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Booking{}, domain.ErrNotFound
		}
		return models.Booking{}, err
	}

	now := time.Now()
	b.PoolID = pool.ID
	b.PoolName = pool.Name
	b.PoolSlug = pool.Slug
	b.StartDatetime = start
	b.EndDatetime = end
	b.TotalAmount = pricing.ComputeTotal(pool.DayPrice, start, end)
	b.Slug = slug.ForBooking(pool.Name, b.UserName)
	b.UpdatedBy = &caller.ID
	b.UpdatedAt = &now

	updated, err := s.bookings.Update(b)
	if err != nil {
		if _, ok := repo.IsDuplicate(err); ok {
			return models.Booking{}, domain.ErrDuplicateBooking
		}
		return models.Booking{}, err
	}
	return updated, nil
}

func (s *BookingService) Delete(caller policy.Caller, slugKey string) error {
	b, err := s.load(slugKey)
	if err != nil {
		return err
	}
	if err := policy.Check(caller, policy.Bookings, policy.Delete, b.UserID); err != nil {
		return err
	}
	return s.bookings.Delete(b.ID)
}

func (s *BookingService) load(slugKey string) (models.Booking, error) {
	b, err := s.bookings.GetBySlug(slugKey)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Booking{}, domain.ErrNotFound
		}
		return models.Booking{}, err
	}
	return b, nil
}

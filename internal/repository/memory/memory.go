// Package memory holds in-memory repository implementations used by unit
// tests. They mirror the store's observable behavior: newest-first
// ordering, unique-index violations surfaced as DuplicateError, no-rows as
// ErrNotFound.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/KNehe/swimmy/internal/models"
	repo "github.com/KNehe/swimmy/internal/repository"
	"github.com/google/uuid"
)

type Repositories struct {
	Users    *UsersRepo
	Pools    *PoolsRepo
	Bookings *BookingsRepo
	Ratings  *RatingsRepo
	Uploads  *UploadsRepo
}

func NewRepositories() Repositories {
	ratings := &RatingsRepo{byID: map[string]models.Rating{}}
	return Repositories{
		Users:    &UsersRepo{byID: map[string]models.User{}},
		Pools:    &PoolsRepo{byID: map[string]models.Pool{}, ratings: ratings},
		Bookings: &BookingsRepo{byID: map[string]models.Booking{}},
		Ratings:  ratings,
		Uploads:  &UploadsRepo{byID: map[string]models.FileUpload{}},
	}
}

// ---------- users ----------

type UsersRepo struct {
	mu   sync.Mutex
	byID map[string]models.User
}

func (r *UsersRepo) Create(username, email, hash, role string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return models.User{}, &repo.DuplicateError{Constraint: "users_email_key"}
		}
		if u.Username == username {
			return models.User{}, &repo.DuplicateError{Constraint: "users_username_key"}
		}
	}
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.byID[u.ID] = u
	return u, nil
}

func (r *UsersRepo) GetByID(id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByEmail(email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (r *UsersRepo) List(limit, offset int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *UsersRepo) UpdatePassword(id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	r.byID[id] = u
	return nil
}

func (r *UsersRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ---------- pools ----------

type PoolsRepo struct {
	mu      sync.Mutex
	byID    map[string]models.Pool
	ratings *RatingsRepo
	seq     int
}

func (r *PoolsRepo) Create(p models.Pool) (models.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.Name == p.Name {
			return models.Pool{}, &repo.DuplicateError{Constraint: "pools_name_key"}
		}
		if e.Slug == p.Slug {
			return models.Pool{}, &repo.DuplicateError{Constraint: "pools_slug_key"}
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.seq++
	p.CreatedAt = time.Now().Add(time.Duration(r.seq)) // stable ordering
	r.byID[p.ID] = p
	return p, nil
}

func (r *PoolsRepo) GetBySlug(slug string) (models.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.Slug == slug {
			p.AverageRating = r.ratings.average(p.ID)
			return p, nil
		}
	}
	return models.Pool{}, repo.ErrNotFound
}

func (r *PoolsRepo) List(limit, offset int) ([]models.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Pool
	for _, p := range r.byID {
		p.AverageRating = r.ratings.average(p.ID)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *PoolsRepo) Update(p models.Pool) (models.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.byID {
		if id == p.ID {
			continue
		}
		if e.Name == p.Name {
			return models.Pool{}, &repo.DuplicateError{Constraint: "pools_name_key"}
		}
	}
	if _, ok := r.byID[p.ID]; !ok {
		return models.Pool{}, repo.ErrNotFound
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *PoolsRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *PoolsRepo) AverageRating(poolID string) (*float64, error) {
	return r.ratings.average(poolID), nil
}

// ---------- bookings ----------

type BookingsRepo struct {
	mu   sync.Mutex
	byID map[string]models.Booking
	seq  int
}

func (r *BookingsRepo) Create(b models.Booking) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.Slug == b.Slug {
			return models.Booking{}, &repo.DuplicateError{Constraint: "bookings_slug_key"}
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	r.seq++
	b.CreatedAt = time.Now().Add(time.Duration(r.seq))
	r.byID[b.ID] = b
	return b, nil
}

func (r *BookingsRepo) GetBySlug(slug string) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.byID {
		if b.Slug == slug {
			return b, nil
		}
	}
	return models.Booking{}, repo.ErrNotFound
}

func (r *BookingsRepo) List(limit, offset int) ([]models.Booking, error) {
	return r.filtered(func(models.Booking) bool { return true }, limit, offset)
}

func (r *BookingsRepo) ListByUser(userID string, limit, offset int) ([]models.Booking, error) {
	return r.filtered(func(b models.Booking) bool { return b.UserID == userID }, limit, offset)
}

func (r *BookingsRepo) filtered(keep func(models.Booking) bool, limit, offset int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.byID {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *BookingsRepo) Update(b models.Booking) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.byID {
		if id != b.ID && e.Slug == b.Slug {
			return models.Booking{}, &repo.DuplicateError{Constraint: "bookings_slug_key"}
		}
	}
	if _, ok := r.byID[b.ID]; !ok {
		return models.Booking{}, repo.ErrNotFound
	}
	r.byID[b.ID] = b
	return b, nil
}

func (r *BookingsRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// ---------- ratings ----------

type RatingsRepo struct {
	mu   sync.Mutex
	byID map[string]models.Rating
	seq  int
}

func (r *RatingsRepo) Create(rt models.Rating) (models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.Slug == rt.Slug {
			return models.Rating{}, &repo.DuplicateError{Constraint: "ratings_slug_key"}
		}
	}
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	r.seq++
	rt.CreatedAt = time.Now().Add(time.Duration(r.seq))
	r.byID[rt.ID] = rt
	return rt, nil
}

func (r *RatingsRepo) GetBySlug(slug string) (models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.byID {
		if rt.Slug == slug {
			return rt, nil
		}
	}
	return models.Rating{}, repo.ErrNotFound
}

func (r *RatingsRepo) List(limit, offset int) ([]models.Rating, error) {
	return r.filtered(func(models.Rating) bool { return true }, limit, offset)
}

func (r *RatingsRepo) ListByUser(userID string, limit, offset int) ([]models.Rating, error) {
	return r.filtered(func(rt models.Rating) bool { return rt.UserID == userID }, limit, offset)
}

func (r *RatingsRepo) filtered(keep func(models.Rating) bool, limit, offset int) ([]models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Rating
	for _, rt := range r.byID {
		if keep(rt) {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *RatingsRepo) Update(rt models.Rating) (models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rt.ID]; !ok {
		return models.Rating{}, repo.ErrNotFound
	}
	r.byID[rt.ID] = rt
	return rt, nil
}

func (r *RatingsRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *RatingsRepo) average(poolID string) *float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	var n int
	for _, rt := range r.byID {
		if rt.PoolID == poolID {
			sum += rt.Value
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// ---------- uploads ----------

type UploadsRepo struct {
	mu   sync.Mutex
	byID map[string]models.FileUpload
}

func (r *UploadsRepo) Create(f models.FileUpload) (models.FileUpload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.UploadedAt = time.Now()
	r.byID[f.ID] = f
	return f, nil
}

func (r *UploadsRepo) GetByID(id string) (models.FileUpload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return models.FileUpload{}, repo.ErrNotFound
	}
	return f, nil
}

func (r *UploadsRepo) List(limit, offset int) ([]models.FileUpload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FileUpload
	for _, f := range r.byID {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return page(out, limit, offset), nil
}

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

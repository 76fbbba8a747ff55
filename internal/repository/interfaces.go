package repository

import "github.com/KNehe/swimmy/internal/models"

type Users interface {
	Create(username, email, passwordHash, role string) (models.User, error)
	GetByID(id string) (models.User, error)
	GetByEmail(email string) (models.User, error)
	List(limit, offset int) ([]models.User, error)
	UpdatePassword(id, passwordHash string) error
}

type Pools interface {
	Create(p models.Pool) (models.Pool, error)
	GetBySlug(slug string) (models.Pool, error)
	// List returns pools newest first, each annotated with its average
	// rating in the same query.
	List(limit, offset int) ([]models.Pool, error)
	Update(p models.Pool) (models.Pool, error)
	Delete(id string) error
	AverageRating(poolID string) (*float64, error)
}

type Bookings interface {
	Create(b models.Booking) (models.Booking, error)
	GetBySlug(slug string) (models.Booking, error)
	List(limit, offset int) ([]models.Booking, error)
	ListByUser(userID string, limit, offset int) ([]models.Booking, error)
	Update(b models.Booking) (models.Booking, error)
	Delete(id string) error
}

type Ratings interface {
	Create(r models.Rating) (models.Rating, error)
	GetBySlug(slug string) (models.Rating, error)
	List(limit, offset int) ([]models.Rating, error)
	ListByUser(userID string, limit, offset int) ([]models.Rating, error)
	Update(r models.Rating) (models.Rating, error)
	Delete(id string) error
}

type Uploads interface {
	Create(f models.FileUpload) (models.FileUpload, error)
	List(limit, offset int) ([]models.FileUpload, error)
	GetByID(id string) (models.FileUpload, error)
}

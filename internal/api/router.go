package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/KNehe/swimmy/internal/api/handlers"
	"github.com/KNehe/swimmy/internal/auth"
	"github.com/KNehe/swimmy/internal/config"
	"github.com/KNehe/swimmy/internal/metrics"
	"github.com/KNehe/swimmy/internal/middleware"
	"github.com/KNehe/swimmy/internal/services"
)

type Services struct {
	Users    *services.UserService
	Pools    *services.PoolService
	Bookings *services.BookingService
	Ratings  *services.RatingService
	Uploads  *services.UploadService
}

func NewRouter(cfg config.Config, tm *auth.TokenManager, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.NewAuthMiddleware(tm).Identify)

	authH := handlers.NewAuthHandler(svc.Users)
	poolH := handlers.NewPoolHandler(svc.Pools)
	bookingH := handlers.NewBookingHandler(svc.Bookings)
	ratingH := handlers.NewRatingHandler(svc.Ratings)
	userH := handlers.NewUserHandler(svc.Users)
	uploadH := handlers.NewUploadHandler(svc.Uploads)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// ---------- auth ----------
	r.Post("/users/register/", authH.Register)
	r.Post("/users/login/", authH.Login)
	r.Post("/tokens/refresh/", authH.Refresh)
	r.Post("/users/reset_password/", authH.ResetPasswordRequest)
	r.Post("/users/reset_password_confirm/{uidb64}/{token}/", authH.ResetPasswordConfirm)

	// ---------- pools ----------
	r.Route("/pools", func(r chi.Router) {
		r.Get("/", poolH.List)
		r.Post("/", poolH.Create)
		r.Get("/{slug}/", poolH.Get)
		r.Put("/{slug}/", poolH.Update)
		r.Patch("/{slug}/", poolH.Update)
		r.Delete("/{slug}/", poolH.Delete)
	})

	// ---------- bookings ----------
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", bookingH.List)
		r.Post("/", bookingH.Create)
		r.Get("/recent_bookings/", bookingH.Recent)
		r.Get("/{slug}/", bookingH.Get)
		r.Put("/{slug}/", bookingH.Update)
		r.Patch("/{slug}/", bookingH.Update)
		r.Delete("/{slug}/", bookingH.Delete)
	})

	// ---------- ratings ----------
	r.Route("/ratings", func(r chi.Router) {
		r.Get("/", ratingH.List)
		r.Post("/", ratingH.Create)
		r.Get("/user_ratings/", ratingH.UserRatings)
		r.Get("/{slug}/", ratingH.Get)
		r.Put("/{slug}/", ratingH.Update)
		r.Patch("/{slug}/", ratingH.Update)
		r.Delete("/{slug}/", ratingH.Delete)
	})

	// ---------- users (read only) ----------
	r.Route("/view-users", func(r chi.Router) {
		r.Get("/", userH.List)
		r.Get("/{id}/", userH.Get)
	})

	// ---------- uploads ----------
	r.Route("/uploads", func(r chi.Router) {
		r.Get("/", uploadH.List)
		r.Post("/", uploadH.Create)
		r.Get("/{id}/", uploadH.Get)
	})

	return r
}

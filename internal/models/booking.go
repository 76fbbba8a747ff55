package models

import "time"

type Booking struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user"`
	PoolID        string     `json:"-"`
	TotalAmount   float64    `json:"total_amount"`
	StartDatetime time.Time  `json:"start_datetime"`
	EndDatetime   time.Time  `json:"end_datetime"`
	Slug          string     `json:"slug"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedBy     *string    `json:"-"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`

	// denormalized read-only fields populated on load
	PoolName string `json:"pool_name"`
	PoolSlug string `json:"pool"`
	UserName string `json:"user_name"`
}

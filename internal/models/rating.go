package models

import "time"

type Rating struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user"`
	PoolID    string     `json:"-"`
	Value     float64    `json:"value"`
	Slug      string     `json:"slug"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	PoolSlug string `json:"pool"`
}

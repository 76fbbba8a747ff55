package models

import "time"

type Pool struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Location        string     `json:"location"`
	DayPrice        float64    `json:"day_price"`
	ThumbnailURL    *string    `json:"thumbnail_url"`
	ImageURL        *string    `json:"image_url"`
	Width           float64    `json:"width"`
	Length          float64    `json:"length"`
	DepthShallowEnd float64    `json:"depth_shallow_end"`
	DepthDeepEnd    float64    `json:"depth_deep_end"`
	MaximumPeople   int        `json:"maximum_people"`
	Slug            string     `json:"slug"`
	CreatedBy       string     `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedBy       *string    `json:"-"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`

	// AverageRating is derived, never stored. nil when the pool has no
	// ratings yet.
	AverageRating *float64 `json:"average_rating"`
}

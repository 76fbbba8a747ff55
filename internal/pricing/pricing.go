// Package pricing computes booking totals and validates booking date
// ranges. Everything here is pure; callers persist the results.
package pricing

import (
	"math"
	"time"

	"github.com/KNehe/swimmy/internal/api/validate"
	"github.com/KNehe/swimmy/internal/domain"
)

// ComputeTotal charges whole days between start and end at the pool's day
// price. Spans under a day (including malformed negative spans) are charged
// a one-day minimum.
func ComputeTotal(dayPrice float64, start, end time.Time) float64 {
	days := int(end.Sub(start) / (24 * time.Hour))
	if days <= 0 {
		return round2(dayPrice)
	}
	return round2(float64(days) * dayPrice)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidateDateRange checks all three booking date rules independently and
// accumulates every violation, mirroring per-field-then-cross-field
// serializer validation. Returns nil when the range is acceptable.
func ValidateDateRange(start, end, now time.Time) validate.Errs {
	var errs validate.Errs
	if start.Before(now) {
		errs = append(errs, validate.ErrField{Field: "start_datetime", Msg: domain.StartDatePastError})
	}
	if end.Before(now) {
		errs = append(errs, validate.ErrField{Field: "end_datetime", Msg: domain.EndDatePastError})
	}
	if start.After(end) {
		errs = append(errs, validate.ErrField{Field: "non_field_errors", Msg: domain.StartDateError})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

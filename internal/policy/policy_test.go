package policy

import (
	"testing"

	"github.com/KNehe/swimmy/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	anon := Caller{}
	user := Caller{ID: "u1"}
	other := Caller{ID: "u2"}
	admin := Caller{ID: "a1", Admin: true}

	tests := []struct {
		name     string
		caller   Caller
		resource Resource
		action   Action
		owner    string
		want     error
	}{
		{"anyone lists pools", anon, Pools, List, "", nil},
		{"anyone retrieves pool", anon, Pools, Retrieve, "", nil},
		{"anonymous pool create unauthenticated", anon, Pools, Create, "", domain.ErrUnauthenticated},
		{"user pool create denied", user, Pools, Create, "", domain.ErrPermissionDenied},
		{"admin pool create", admin, Pools, Create, "", nil},
		{"admin pool delete", admin, Pools, Delete, "", nil},

		{"user books", user, Bookings, Create, "", nil},
		{"anonymous booking create unauthenticated", anon, Bookings, Create, "", domain.ErrUnauthenticated},
		{"user cannot list all bookings", user, Bookings, List, "", domain.ErrPermissionDenied},
		{"admin lists all bookings", admin, Bookings, List, "", nil},
		{"owner retrieves booking", user, Bookings, Retrieve, "u1", nil},
		{"non-owner booking retrieve denied", other, Bookings, Retrieve, "u1", domain.ErrPermissionDenied},
		// owner-only is deliberate: no admin override on booking objects
		{"admin booking retrieve denied", admin, Bookings, Retrieve, "u1", domain.ErrPermissionDenied},
		{"admin booking update denied", admin, Bookings, Update, "u1", domain.ErrPermissionDenied},
		{"owner deletes booking", user, Bookings, Delete, "u1", nil},

		{"user rates", user, Ratings, Create, "", nil},
		{"admin rating delete denied", admin, Ratings, Delete, "u1", domain.ErrPermissionDenied},
		{"owner updates rating", user, Ratings, Update, "u1", nil},

		{"user cannot list users", user, Users, List, "", domain.ErrPermissionDenied},
		{"admin lists users", admin, Users, List, "", nil},
		{"anyone retrieves user", anon, Users, Retrieve, "", nil},

		{"user upload denied", user, Uploads, Create, "", domain.ErrPermissionDenied},
		{"admin uploads", admin, Uploads, Create, "", nil},

		{"unknown action denied", admin, Pools, ListOwn, "", domain.ErrPermissionDenied},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Check(tc.caller, tc.resource, tc.action, tc.owner)
			if tc.want == nil {
				assert.NoError(t, got)
			} else {
				assert.ErrorIs(t, got, tc.want)
			}
		})
	}
}

// Package policy holds the authorization table: one capability per
// (resource, action) pair, evaluated by a single Check function with an
// explicit caller identity. No handler branches on roles directly.
package policy

import "github.com/KNehe/swimmy/internal/domain"

// Caller is the authenticated principal attached to a request. The zero
// value is an anonymous caller.
type Caller struct {
	ID    string
	Admin bool
}

func (c Caller) Anonymous() bool { return c.ID == "" }

type Resource string

const (
	Pools    Resource = "pools"
	Bookings Resource = "bookings"
	Ratings  Resource = "ratings"
	Users    Resource = "users"
	Uploads  Resource = "uploads"
)

type Action string

const (
	Create   Action = "create"
	List     Action = "list"
	Retrieve Action = "retrieve"
	Update   Action = "update"
	Delete   Action = "delete"
	ListOwn  Action = "list_own"
)

type Capability int

const (
	Anyone Capability = iota
	Authenticated
	Admin
	// Owner grants access solely to the resource's owning user. There is
	// deliberately no admin override; see table entries for bookings and
	// ratings.
	Owner
)

var table = map[Resource]map[Action]Capability{
	Pools: {
		Create:   Admin,
		List:     Anyone,
		Retrieve: Anyone,
		Update:   Admin,
		Delete:   Admin,
	},
	Bookings: {
		Create:   Authenticated,
		List:     Admin,
		Retrieve: Owner,
		Update:   Owner,
		Delete:   Owner,
		ListOwn:  Authenticated,
	},
	Ratings: {
		Create:   Authenticated,
		List:     Admin,
		Retrieve: Owner,
		Update:   Owner,
		Delete:   Owner,
		ListOwn:  Authenticated,
	},
	Users: {
		List:     Admin,
		Retrieve: Anyone,
	},
	Uploads: {
		Create:   Admin,
		List:     Admin,
		Retrieve: Admin,
	},
}

// Check evaluates the table entry for (resource, action) against the caller.
// ownerID is consulted only for Owner entries; pass "" otherwise. An
// anonymous caller hitting anything above Anyone fails as unauthenticated,
// an authenticated caller missing the capability fails as permission denied.
func Check(c Caller, resource Resource, action Action, ownerID string) error {
	need, ok := table[resource][action]
	if !ok {
		return domain.ErrPermissionDenied
	}
	if need == Anyone {
		return nil
	}
	if c.Anonymous() {
		return domain.ErrUnauthenticated
	}
	switch need {
	case Authenticated:
		return nil
	case Admin:
		if c.Admin {
			return nil
		}
	case Owner:
		if c.ID == ownerID {
			return nil
		}
	}
	return domain.ErrPermissionDenied
}

package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound replaces driver-level no-rows errors at the repository
// boundary.
var ErrNotFound = errors.New("not found")

// DuplicateError signals a unique-constraint violation. Constraint carries
// the index name so services can tell which field collided.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for %s", e.Constraint)
}

// IsDuplicate reports whether err is a unique violation, optionally
// matching the constraint name.
func IsDuplicate(err error) (*DuplicateError, bool) {
	var d *DuplicateError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

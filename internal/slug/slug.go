// Package slug derives URL-safe identifiers from entity names. Derivation
// is deterministic and idempotent; uniqueness is enforced by the store's
// unique index, not here.
package slug

import "strings"

// Make lowercases the joined parts and collapses non-alphanumeric runs into
// single hyphens, trimming hyphens at the edges.
func Make(parts ...string) string {
	s := strings.ToLower(strings.Join(parts, " "))
	var b strings.Builder
	prevHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func ForPool(name string) string { return Make(name) }

func ForBooking(poolName, username string) string {
	return Make(poolName, "booked by", username)
}

func ForRating(poolName, username string) string {
	return Make(poolName, "rated by", username)
}

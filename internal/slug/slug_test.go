package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"lowercases", []string{"Nehe Ducks"}, "nehe-ducks"},
		{"collapses punctuation runs", []string{"Nehe's -- Ducks!"}, "nehe-s-ducks"},
		{"trims edge hyphens", []string{"  Nehe Ducks  "}, "nehe-ducks"},
		{"joins parts", []string{"Nehe Ducks", "booked by", "doe"}, "nehe-ducks-booked-by-doe"},
		{"digits kept", []string{"Pool 42"}, "pool-42"},
		{"empty", []string{""}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.in...))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	in := "Naboa Road Pool #3"
	first := Make(in)
	assert.Equal(t, first, Make(in))
	assert.Equal(t, first, Make(first), "slugifying a slug must be a no-op")
}

func TestCompositions(t *testing.T) {
	assert.Equal(t, "nehe-ducks", ForPool("Nehe Ducks"))
	assert.Equal(t, "nehe-ducks-booked-by-doe", ForBooking("Nehe Ducks", "doe"))
	assert.Equal(t, "nehe-ducks-rated-by-doe", ForRating("Nehe Ducks", "doe"))
}

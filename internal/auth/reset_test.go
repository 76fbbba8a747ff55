package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenRoundTrip(t *testing.T) {
	g := NewResetTokenGenerator("secret", time.Hour)
	tok := g.Make("u1", "hash1")
	assert.NoError(t, g.Check("u1", "hash1", tok))
}

func TestResetTokenRejections(t *testing.T) {
	g := NewResetTokenGenerator("secret", time.Hour)
	tok := g.Make("u1", "hash1")

	t.Run("wrong user", func(t *testing.T) {
		assert.Error(t, g.Check("u2", "hash1", tok))
	})

	t.Run("password change invalidates", func(t *testing.T) {
		assert.Error(t, g.Check("u1", "hash2", tok))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewResetTokenGenerator("other", time.Hour)
		assert.Error(t, other.Check("u1", "hash1", tok))
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewResetTokenGenerator("secret", -time.Minute)
		tok := expired.Make("u1", "hash1")
		assert.Error(t, expired.Check("u1", "hash1", tok))
	})

	t.Run("malformed", func(t *testing.T) {
		assert.Error(t, g.Check("u1", "hash1", "garbage"))
		assert.Error(t, g.Check("u1", "hash1", ""))
	})
}

func TestUIDEncoding(t *testing.T) {
	id := "9f2c1a34-0000-4000-8000-000000000000"
	enc := EncodeUID(id)
	dec, err := DecodeUID(enc)
	require.NoError(t, err)
	assert.Equal(t, id, dec)

	_, err = DecodeUID("not base64 !!!")
	assert.Error(t, err)
}

func TestTokenManagerPair(t *testing.T) {
	tm := NewTokenManager("acc", "ref", "swimmy", time.Minute, time.Hour)
	access, refresh, err := tm.GeneratePair("u1", "admin")
	require.NoError(t, err)

	claims, err := tm.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	// token types must not be interchangeable
	_, err = tm.ParseAccess(refresh)
	assert.Error(t, err)
	_, err = tm.ParseRefresh(access)
	assert.Error(t, err)

	rc, err := tm.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", rc.UserID)
}

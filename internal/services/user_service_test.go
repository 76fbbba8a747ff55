package services

import (
	"strings"
	"testing"

	"github.com/KNehe/swimmy/internal/api/validate"
	"github.com/KNehe/swimmy/internal/auth"
	"github.com/KNehe/swimmy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(errs validate.Errs) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	u, pair, err := f.users.Register("nehe", "nehe@gmail.com", "123Deaally@")
	require.NoError(t, err)
	assert.Equal(t, "nehe", u.Username)
	assert.Equal(t, "nehe@gmail.com", u.Email)
	assert.NotEqual(t, "123Deaally@", u.PasswordHash, "password is stored hashed")
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
}

func TestRegisterBlankFields(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.users.Register("", "", "")
	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	assert.ElementsMatch(t, []string{"email", "username", "password"}, fieldsOf(errs))
}

func TestRegisterInvalidEmail(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.users.Register("nehe", "not-an-email", "pw")
	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{"email"}, fieldsOf(errs))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.users.Register("nehe", "nehe@gmail.com", "pw")
	require.NoError(t, err)
	before := f.repos.Users.Count()

	_, _, err = f.users.Register("other", "nehe@gmail.com", "pw")
	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{"email"}, fieldsOf(errs))
	assert.Equal(t, before, f.repos.Users.Count(), "failed registration must not create a user")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.users.Register("nehe", "nehe@gmail.com", "pw")
	require.NoError(t, err)

	_, _, err = f.users.Register("nehe", "other@gmail.com", "pw")
	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{"username"}, fieldsOf(errs))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.users.Register("nehe", "nehe@gmail.com", "123Deaally@")
	require.NoError(t, err)

	u, pair, err := f.users.Login("nehe@gmail.com", "123Deaally@")
	require.NoError(t, err)
	assert.Equal(t, "nehe", u.Username)
	assert.NotEmpty(t, pair.Access)

	_, _, err = f.users.Login("nehe@gmail.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthFailed)

	_, _, err = f.users.Login("nobody@gmail.com", "pw")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestLoginBlankFields(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.users.Login("", "")
	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	assert.ElementsMatch(t, []string{"email", "password"}, fieldsOf(errs))
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	_, pair, err := f.users.Register("nehe", "nehe@gmail.com", "pw")
	require.NoError(t, err)

	access, err := f.users.Refresh(pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, err = f.users.Refresh(pair.Access)
	assert.Error(t, err, "access token must not refresh")
}

func TestRequestPasswordReset(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.users.Register("nehe", "nehe@gmail.com", "pw")
	require.NoError(t, err)

	require.NoError(t, f.users.RequestPasswordReset("nehe@gmail.com"))

	err = f.users.RequestPasswordReset("nobody@gmail.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestConfirmPasswordReset(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.users.Register("nehe", "nehe@gmail.com", "old-password")
	require.NoError(t, err)
	require.NoError(t, f.users.RequestPasswordReset("nehe@gmail.com"))

	// drain the dispatcher so the mail body is recorded
	f.drainMail(t)

	uid, token := f.resetLinkParts(t)

	t.Run("missing parts", func(t *testing.T) {
		assert.ErrorIs(t, f.users.ConfirmPasswordReset("", token, "new"), domain.ErrInvalidRequest)
		assert.ErrorIs(t, f.users.ConfirmPasswordReset(uid, "", "new"), domain.ErrInvalidRequest)
	})

	t.Run("unknown user", func(t *testing.T) {
		ghost := auth.EncodeUID("00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, f.users.ConfirmPasswordReset(ghost, token, "new"), domain.ErrUnknownUser)
	})

	t.Run("bad token", func(t *testing.T) {
		assert.ErrorIs(t, f.users.ConfirmPasswordReset(uid, "bogus", "new"), domain.ErrInvalidResetLink)
	})

	t.Run("success then single use", func(t *testing.T) {
		require.NoError(t, f.users.ConfirmPasswordReset(uid, token, "new-password"))

		_, _, err := f.users.Login("nehe@gmail.com", "new-password")
		assert.NoError(t, err)
		_, _, err = f.users.Login("nehe@gmail.com", "old-password")
		assert.Error(t, err)

		// the consumed token no longer verifies
		assert.ErrorIs(t, f.users.ConfirmPasswordReset(uid, token, "again"), domain.ErrInvalidResetLink)
	})
}

// resetLinkParts pulls uid and token out of the last reset email body.
func (f *fixture) resetLinkParts(t *testing.T) (uid, token string) {
	t.Helper()
	body, ok := f.sent.lastBody()
	require.True(t, ok, "no reset mail recorded")
	for _, line := range strings.Fields(body) {
		if strings.HasPrefix(line, "http://front/reset/") {
			parts := strings.Split(strings.Trim(strings.TrimPrefix(line, "http://front/reset/"), "/"), "/")
			require.Len(t, parts, 2)
			return parts[0], parts[1]
		}
	}
	t.Fatal("reset link not found in mail body")
	return "", ""
}

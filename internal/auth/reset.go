package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ResetTokenGenerator makes single-use password reset tokens. The MAC is
// keyed on the user's current password hash, so changing the password
// invalidates every outstanding token without any stored state.
type ResetTokenGenerator struct {
	secret []byte
	ttl    time.Duration
}

func NewResetTokenGenerator(secret string, ttl time.Duration) *ResetTokenGenerator {
	return &ResetTokenGenerator{secret: []byte(secret), ttl: ttl}
}

func (g *ResetTokenGenerator) Make(userID, passwordHash string) string {
	exp := time.Now().Add(g.ttl).Unix()
	mac := g.sign(userID, passwordHash, exp)
	return strconv.FormatInt(exp, 10) + "-" + base64.RawURLEncoding.EncodeToString(mac)
}

// Check verifies the token against the user's current password hash and
// expiry. Returns an error for malformed, expired, or replayed tokens.
func (g *ResetTokenGenerator) Check(userID, passwordHash, token string) error {
	expStr, macStr, ok := strings.Cut(token, "-")
	if !ok {
		return errors.New("malformed token")
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return errors.New("malformed token")
	}
	if time.Now().Unix() > exp {
		return errors.New("token expired")
	}
	got, err := base64.RawURLEncoding.DecodeString(macStr)
	if err != nil {
		return errors.New("malformed token")
	}
	want := g.sign(userID, passwordHash, exp)
	if !hmac.Equal(got, want) {
		return errors.New("token mismatch")
	}
	return nil
}

func (g *ResetTokenGenerator) sign(userID, passwordHash string, exp int64) []byte {
	h := hmac.New(sha256.New, g.secret)
	h.Write([]byte(userID))
	h.Write([]byte{0})
	h.Write([]byte(passwordHash))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(exp, 10)))
	return h.Sum(nil)
}

// EncodeUID / DecodeUID transport the user id urlsafe-base64 encoded in
// reset links.
func EncodeUID(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

func DecodeUID(s string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

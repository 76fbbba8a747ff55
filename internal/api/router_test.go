package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KNehe/swimmy/internal/auth"
	"github.com/KNehe/swimmy/internal/config"
	"github.com/KNehe/swimmy/internal/domain"
	"github.com/KNehe/swimmy/internal/mailer"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/repository/memory"
	"github.com/KNehe/swimmy/internal/services"
	"github.com/KNehe/swimmy/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullMailer struct{}

func (nullMailer) Send(to []string, subject, body string) error { return nil }

type testServer struct {
	handler http.Handler
	repos   memory.Repositories
	tm      *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repos := memory.NewRepositories()
	tm := auth.NewTokenManager("acc", "ref", "swimmy-test", time.Minute, time.Hour)
	resets := auth.NewResetTokenGenerator("acc", time.Hour)
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	mail := mailer.NewDispatcher(nullMailer{}, wp)

	svc := Services{
		Users:    services.NewUserService(repos.Users, tm, resets, mail, "http://front/reset"),
		Pools:    services.NewPoolService(repos.Pools),
		Bookings: services.NewBookingService(repos.Bookings, repos.Pools, repos.Users),
		Ratings:  services.NewRatingService(repos.Ratings, repos.Pools, repos.Users),
		Uploads:  services.NewUploadService(repos.Uploads, t.TempDir()),
	}
	cfg := config.Config{Env: "test", RateRPS: 1000}
	return &testServer{handler: NewRouter(cfg, tm, svc), repos: repos, tm: tm}
}

// bearer mints an access token for a stored user.
func (s *testServer) bearer(t *testing.T, username, role string) string {
	t.Helper()
	u, err := s.repos.Users.Create(username, username+"@gmail.com", "x", role)
	require.NoError(t, err)
	access, _, err := s.tm.GeneratePair(u.ID, u.Role)
	require.NoError(t, err)
	return "Bearer " + access
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRegisterEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/users/register/", "", map[string]string{
		"username": "nehe", "email": "nehe@gmail.com", "password": "123Deaally@",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, domain.UserRegistrationMessage, body["message"])
	assert.NotEmpty(t, body["access"])
	assert.NotEmpty(t, body["refresh"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "nehe", user["username"])

	// same email again: field error, no second account
	rec = s.do(t, http.MethodPost, "/users/register/", "", map[string]string{
		"username": "other", "email": "nehe@gmail.com", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", decode(t, rec)["code"])
}

func TestLoginEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/users/register/", "", map[string]string{
		"username": "nehe", "email": "nehe@gmail.com", "password": "123Deaally@",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/users/login/", "", map[string]string{
		"email": "nehe@gmail.com", "password": "123Deaally@",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["access"])

	rec = s.do(t, http.MethodPost, "/users/login/", "", map[string]string{
		"email": "nehe@gmail.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domain.NoActiveAccountError, decode(t, rec)["detail"])
}

func TestPoolEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.bearer(t, "boss", models.RoleAdmin)
	member := s.bearer(t, "swimmer", models.RoleUser)

	poolBody := map[string]interface{}{
		"name": "Blue Lagoon", "location": "Mbale", "day_price": 20000.0,
		"width": 4.0, "length": 8.2, "maximum_people": 15,
	}

	rec := s.do(t, http.MethodPost, "/pools/", "", poolBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/pools/", member, poolBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/pools/", admin, poolBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "blue-lagoon", created["slug"])

	// listing is open to everyone
	rec = s.do(t, http.MethodGet, "/pools/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var pools []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pools))
	require.Len(t, pools, 1)
	assert.Nil(t, pools[0]["average_rating"], "no ratings yet")

	rec = s.do(t, http.MethodGet, "/pools/blue-lagoon/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/pools/no-such-pool/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingEndpoint(t *testing.T) {
	s := newTestServer(t)
	admin := s.bearer(t, "boss", models.RoleAdmin)
	member := s.bearer(t, "swimmer", models.RoleUser)

	rec := s.do(t, http.MethodPost, "/pools/", admin, map[string]interface{}{
		"name": "Blue Lagoon", "location": "Mbale", "day_price": 20000.0,
		"width": 4.0, "length": 8.2, "maximum_people": 15,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	start := time.Now().Add(24 * time.Hour).UTC()
	end := start.Add(48 * time.Hour)
	book := map[string]interface{}{
		"pool":           "blue-lagoon",
		"start_datetime": start.Format(time.RFC3339),
		"end_datetime":   end.Format(time.RFC3339),
	}

	rec = s.do(t, http.MethodPost, "/bookings/", "", book)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/bookings/", member, book)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, float64(40000), created["total_amount"])
	assert.Equal(t, "blue-lagoon-booked-by-swimmer", created["slug"])

	// booking the same pool twice is an integrity error
	rec = s.do(t, http.MethodPost, "/bookings/", member, book)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "integrity_error", body["code"])
	assert.Equal(t, domain.BookingIntegrityError, body["error"])

	// dates in the past are rejected with field details
	past := map[string]interface{}{
		"pool":           "blue-lagoon",
		"start_datetime": time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339),
		"end_datetime":   time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339),
	}
	rec = s.do(t, http.MethodPost, "/bookings/", member, past)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", decode(t, rec)["code"])

	// owner-only retrieval: another account gets 403
	other := s.bearer(t, "intruder", models.RoleUser)
	slugPath := fmt.Sprintf("/bookings/%s/", created["slug"])
	rec = s.do(t, http.MethodGet, slugPath, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, slugPath, member, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBookingPatchPartialBody(t *testing.T) {
	s := newTestServer(t)
	admin := s.bearer(t, "boss", models.RoleAdmin)
	member := s.bearer(t, "swimmer", models.RoleUser)

	rec := s.do(t, http.MethodPost, "/pools/", admin, map[string]interface{}{
		"name": "Blue Lagoon", "location": "Mbale", "day_price": 20000.0,
		"width": 4.0, "length": 8.2, "maximum_people": 15,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	start := time.Now().Add(24 * time.Hour).UTC()
	rec = s.do(t, http.MethodPost, "/bookings/", member, map[string]interface{}{
		"pool":           "blue-lagoon",
		"start_datetime": start.Format(time.RFC3339),
		"end_datetime":   start.Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	slugPath := fmt.Sprintf("/bookings/%s/", decode(t, rec)["slug"])

	// omitted fields keep their stored values
	rec = s.do(t, http.MethodPatch, slugPath, member, map[string]interface{}{
		"end_datetime": start.Add(96 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(80000), decode(t, rec)["total_amount"])

	// explicit nulls are a field error, not a crash
	for _, field := range []string{"start_datetime", "end_datetime"} {
		rec = s.do(t, http.MethodPatch, slugPath, member, map[string]interface{}{field: nil})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "validation_failed", body["code"])
		assert.Contains(t, rec.Body.String(), field)
	}
}

func TestRatingEndpoint(t *testing.T) {
	s := newTestServer(t)
	admin := s.bearer(t, "boss", models.RoleAdmin)
	member := s.bearer(t, "swimmer", models.RoleUser)

	rec := s.do(t, http.MethodPost, "/pools/", admin, map[string]interface{}{
		"name": "Blue Lagoon", "location": "Mbale", "day_price": 20000.0,
		"width": 4.0, "length": 8.2, "maximum_people": 15,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/ratings/", member, map[string]interface{}{
		"pool": "blue-lagoon", "value": 4.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/ratings/", member, map[string]interface{}{
		"pool": "blue-lagoon", "value": 5.5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the pool listing now carries the aggregate
	rec = s.do(t, http.MethodGet, "/pools/blue-lagoon/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4.5, decode(t, rec)["average_rating"])
}

func TestViewUsersAdminOnly(t *testing.T) {
	s := newTestServer(t)
	member := s.bearer(t, "swimmer", models.RoleUser)
	admin := s.bearer(t, "boss", models.RoleAdmin)

	rec := s.do(t, http.MethodGet, "/view-users/", member, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/view-users/", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMalformedBearerRejected(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/pools/", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

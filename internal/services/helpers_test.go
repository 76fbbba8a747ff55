package services

import (
	"sync"
	"testing"
	"time"

	"github.com/KNehe/swimmy/internal/auth"
	"github.com/KNehe/swimmy/internal/mailer"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/policy"
	"github.com/KNehe/swimmy/internal/repository/memory"
	"github.com/KNehe/swimmy/internal/slug"
	"github.com/KNehe/swimmy/internal/worker"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repos    memory.Repositories
	users    *UserService
	pools    *PoolService
	bookings *BookingService
	ratings  *RatingService
	sent     *recordingMailer
	wp       *worker.Pool
}

type recordingMailer struct {
	mu     sync.Mutex
	to     [][]string
	bodies []string
}

func (m *recordingMailer) Send(to []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *recordingMailer) lastBody() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.bodies) == 0 {
		return "", false
	}
	return m.bodies[len(m.bodies)-1], true
}

// drainMail waits until every queued mail job has run. The pool has a
// single worker, so a sentinel job completing means all earlier sends
// finished.
func (f *fixture) drainMail(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	f.wp.Submit(func() { close(done) })
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("mail queue did not drain")
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories()
	tm := auth.NewTokenManager("acc", "ref", "swimmy-test", time.Minute, time.Hour)
	resets := auth.NewResetTokenGenerator("acc", time.Hour)
	sent := &recordingMailer{}
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	mail := mailer.NewDispatcher(sent, wp)

	return &fixture{
		repos:    repos,
		users:    NewUserService(repos.Users, tm, resets, mail, "http://front/reset"),
		pools:    NewPoolService(repos.Pools),
		bookings: NewBookingService(repos.Bookings, repos.Pools, repos.Users),
		ratings:  NewRatingService(repos.Ratings, repos.Pools, repos.Users),
		sent:     sent,
		wp:       wp,
	}
}

func (f *fixture) addUser(t *testing.T, username, email, role string) (models.User, policy.Caller) {
	t.Helper()
	u, err := f.repos.Users.Create(username, email, "x", role)
	require.NoError(t, err)
	return u, policy.Caller{ID: u.ID, Admin: role == models.RoleAdmin}
}

func (f *fixture) addPool(t *testing.T, name string, dayPrice float64, createdBy string) models.Pool {
	t.Helper()
	p, err := f.repos.Pools.Create(models.Pool{
		Name:          name,
		Location:      "Naboa road Mbale uganda",
		DayPrice:      dayPrice,
		Width:         4.0,
		Length:        8.2,
		MaximumPeople: 15,
		Slug:          slug.ForPool(name),
		CreatedBy:     createdBy,
	})
	require.NoError(t, err)
	return p
}

package session

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The store backstop outlives the idle window so the Access Gate, not the
// store, is the component that decides a session has timed out.
const ttlFactor = 4

// Config carries the cookie and timeout policy for the Manager.
type Config struct {
	CookieName  string
	IdleTimeout time.Duration
	Secure      bool
}

// Manager owns the session lifecycle: opaque ids, the client cookie and the
// server-side store. Handlers and middleware never touch the Store directly.
type Manager struct {
	store  Store
	config Config
	now    func() time.Time
}

func NewManager(store Store, config Config) *Manager {
	if config.CookieName == "" {
		config.CookieName = "hellostore_session"
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = 15 * time.Minute
	}
	return &Manager{
		store:  store,
		config: config,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) IdleTimeout() time.Duration {
	return m.config.IdleTimeout
}

// Create starts a new session for the given identity and sets the cookie.
func (m *Manager) Create(c *gin.Context, data *Data) (string, error) {
	id := uuid.NewString()
	data.LastActivity = m.now()

	if err := m.store.Set(c.Request.Context(), id, data, m.ttl()); err != nil {
		return "", err
	}

	c.SetCookie(m.config.CookieName, id, int(m.ttl().Seconds()), "/", "", m.config.Secure, true)
	return id, nil
}

// Current resolves the session referenced by the request cookie.
// Returns ErrNotFound when there is no cookie or no stored session.
func (m *Manager) Current(c *gin.Context) (string, *Data, error) {
	id, err := c.Cookie(m.config.CookieName)
	if err != nil || id == "" {
		return "", nil, ErrNotFound
	}

	data, err := m.store.Get(c.Request.Context(), id)
	if err != nil {
		return id, nil, err
	}
	return id, data, nil
}

// Touch refreshes the sliding idle window: LastActivity is reset to now and
// the store entry is rewritten with a fresh ttl.
func (m *Manager) Touch(ctx context.Context, id string, data *Data) error {
	data.LastActivity = m.now()
	return m.store.Set(ctx, id, data, m.ttl())
}

// Destroy removes the session server-side and expires the cookie.
func (m *Manager) Destroy(c *gin.Context, id string) error {
	err := m.store.Destroy(c.Request.Context(), id)
	c.SetCookie(m.config.CookieName, "", -1, "/", "", m.config.Secure, true)
	return err
}

// IdleDuration computes how long the session has been idle. A missing
// LastActivity means no idle time has accumulated yet.
func (m *Manager) IdleDuration(data *Data) time.Duration {
	if data.LastActivity.IsZero() {
		return 0
	}
	return m.now().Sub(data.LastActivity)
}

// Expired reports whether the session exceeded the idle window.
func (m *Manager) Expired(data *Data) bool {
	return m.IdleDuration(data) > m.config.IdleTimeout
}

func (m *Manager) ttl() time.Duration {
	return m.config.IdleTimeout * ttlFactor
}

package session

import (
	"context"
	"errors"
	"time"

	"hellostore_backend/internal/models"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Data is the server-side session state: a snapshot of the authenticated
// identity plus the activity timestamp the idle-timeout check runs against.
type Data struct {
	UserID          string          `json:"user_id"`
	ExternalID      string          `json:"external_id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	Role            models.UserRole `json:"role"`
	IsEmailVerified bool            `json:"is_email_verified"`
	LastActivity    time.Time       `json:"last_activity"`
}

func (d *Data) IsAdmin() bool {
	return d.Role == models.UserRoleAdmin
}

// Store persists sessions keyed by an opaque id. The store owns expiry of
// abandoned sessions via the ttl backstop; the idle-timeout policy itself
// lives in the Access Gate.
type Store interface {
	Set(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Data, error)
	Destroy(ctx context.Context, id string) error
}

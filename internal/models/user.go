package models

import (
	"strings"
	"time"
)

type User struct {
	BaseModel
	ExternalID   string     `gorm:"type:uuid;uniqueIndex;not null"`
	FirstName    string     `gorm:"not null"`
	LastName     string     `gorm:"not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'customer'"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`

	IsEmailVerified      bool `gorm:"default:false"`
	VerificationToken    string
	VerificationTokenExp *time.Time
	ResetToken           string
	ResetTokenExp        *time.Time

	// Profile fields editable by the user after registration.
	Address       string
	ContactNumber string
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// AuthState is the lifecycle state of a user record. It is derived from the
// persisted fields so the state never lives in two places.
type AuthState string

const (
	AuthStatePendingVerification AuthState = "pending_verification"
	AuthStateActive              AuthState = "active"
	AuthStateInactive            AuthState = "inactive"
)

func (u *User) AuthState() AuthState {
	if u.Status != UserStatusActive {
		return AuthStateInactive
	}
	if !u.IsEmailVerified {
		return AuthStatePendingVerification
	}
	return AuthStateActive
}

// NormalizeEmail is the canonical form used for uniqueness checks and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

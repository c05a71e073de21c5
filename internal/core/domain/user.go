package domain

import (
	"strings"
	"time"
)

// Tier is the subscription level of a user
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// User represents an account owner of a briefing library
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never serialize
	Name         string     `json:"name"`
	Tier         Tier       `json:"subscription_status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// UserSummary provides a safe view of user data (no password hash)
type UserSummary struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Tier        Tier       `json:"subscription_status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToSummary converts a User to UserSummary
func (u *User) ToSummary() *UserSummary {
	return &UserSummary{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.DisplayName(),
		Tier:        u.Tier,
		LastLoginAt: u.LastLoginAt,
	}
}

// IsPro checks if the user holds a paid subscription
func (u *User) IsPro() bool {
	return u.Tier == TierPro
}

// DisplayName returns the name to show for the user.
// Falls back to the local part of the email, then to "User".
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	if u.Email != "" {
		return u.Email
	}
	return "User"
}

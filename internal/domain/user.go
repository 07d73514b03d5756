package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	ImageID      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	RoleAdministrator = "ADMINISTRATOR"
	RoleUser          = "USER"
)

// Session is the explicit per-request application session. It is created
// at sign-in, carried through the request context and dropped at
// sign-out; nothing about the current user lives in package state.
type Session struct {
	UserID    string
	Name      string
	Role      string
	ExpiresAt time.Time
}

func (s Session) IsAdministrator() bool {
	return s.Role == RoleAdministrator
}

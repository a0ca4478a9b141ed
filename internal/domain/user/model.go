// Package user models authentication accounts and request principals.
package user

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrAlreadyRegistered = errors.New("username already registered")

// Account is a stored login credential. PasswordHash is a bcrypt digest.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal identifies the authenticated caller of a request.
type Principal struct {
	Username string
	Role     string
}

// IsAdmin reports whether the principal may call admin operations.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

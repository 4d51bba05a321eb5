// AngelaMos | 2026
// entity.go

package auth

import (
	"github.com/carterperez-dev/balansai/internal/session"
)

// UserInfo is the slice of a user account that authentication needs.
type UserInfo struct {
	ID           int64
	Email        string
	FullName     string
	Plan         string
	PasswordHash string
	IsActive     bool
}

func (u *UserInfo) Identity() session.UserIdentity {
	return session.UserIdentity{
		ID:    u.ID,
		Name:  u.FullName,
		Email: u.Email,
		Plan:  u.Plan,
	}
}

// NewUser is the account created by self-registration.
type NewUser struct {
	FullName     string
	Email        string
	Phone        string
	Company      string
	PasswordHash string
}

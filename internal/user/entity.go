// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/balansai/internal/auth"
)

type User struct {
	ID           int64      `db:"id"`
	FullName     string     `db:"full_name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Phone        *string    `db:"phone"`
	Company      *string    `db:"company"`
	PlanType     string     `db:"plan_type"`
	IsActive     bool       `db:"is_active"`
	LastLogin    *time.Time `db:"last_login"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (u *User) PhoneText() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}

func (u *User) CompanyText() string {
	if u.Company == nil {
		return ""
	}
	return *u.Company
}

func (u *User) toInfo() *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Plan:         u.PlanType,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
	}
}

const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

var Plans = []string{PlanFree, PlanPro, PlanEnterprise}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/carterperez-dev/balansai/internal/auth"
	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/export"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	return user.toInfo(), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.toInfo(), nil
}

func (s *Service) Create(ctx context.Context, in auth.NewUser) (*auth.UserInfo, error) {
	user := &User{
		FullName:     in.FullName,
		Email:        strings.ToLower(in.Email),
		PasswordHash: in.PasswordHash,
		Phone:        nullable(in.Phone),
		Company:      nullable(in.Company),
		PlanType:     PlanFree,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.toInfo(), nil
}

func (s *Service) RecordLogin(ctx context.Context, id int64) error {
	return s.repo.TouchLastLogin(ctx, id)
}

func (s *Service) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, params ListParams) (*core.Page[User], error) {
	return s.repo.List(ctx, params)
}

// AdminUpdate applies an admin edit. A changed email that is already
// taken fails with auth.ErrEmailExists.
func (s *Service) AdminUpdate(ctx context.Context, id int64, req AdminUpdateRequest) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Phone = nullable(strings.TrimSpace(req.Phone))
	user.Company = nullable(strings.TrimSpace(req.Company))
	user.PlanType = req.PlanType
	user.IsActive = req.IsActive

	if err := s.repo.Update(ctx, user); err != nil {
		if core.IsConstraintViolation(err, auth.EmailConstraint) {
			return nil, auth.ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) ToggleActive(ctx context.Context, id int64) (bool, error) {
	return s.repo.ToggleActive(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, req ProfileRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Company = strings.TrimSpace(req.Company)
	return s.repo.UpdateProfile(ctx, id, req)
}

var exportColumns = []export.Column[User]{
	{Header: "ID", Value: func(u *User) string { return export.Int(u.ID) }},
	{Header: "Full Name", Value: func(u *User) string { return u.FullName }},
	{Header: "Email", Value: func(u *User) string { return u.Email }},
	{Header: "Phone", Value: func(u *User) string { return export.OptionalText(u.Phone) }},
	{Header: "Company", Value: func(u *User) string { return export.OptionalText(u.Company) }},
	{Header: "Plan", Value: func(u *User) string { return u.PlanType }},
	{Header: "Status", Value: func(u *User) string { return export.ActiveText(u.IsActive) }},
	{Header: "Last Login", Value: func(u *User) string { return export.OptionalTime(u.LastLogin) }},
	{Header: "Registered", Value: func(u *User) string { return export.Time(u.CreatedAt) }},
}

// Export streams every user matching params as CSV.
func (s *Service) Export(ctx context.Context, params ListParams, w io.Writer) (int, error) {
	cw, err := export.NewWriter(w, exportColumns)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Stream(ctx, params, cw.Write); err != nil {
		return cw.Rows(), fmt.Errorf("export users: %w", err)
	}

	if err := cw.Flush(); err != nil {
		return cw.Rows(), fmt.Errorf("export users: %w", err)
	}

	return cw.Rows(), nil
}

var _ auth.UserProvider = (*Service)(nil)

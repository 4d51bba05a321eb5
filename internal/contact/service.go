// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/export"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Submit(ctx context.Context, req CreateRequest) (*Contact, error) {
	c := &Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Message: strings.TrimSpace(req.Message),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) CountUnread(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}

func (s *Service) List(ctx context.Context, params ListParams) (*core.Page[Contact], error) {
	return s.repo.List(ctx, params)
}

var exportColumns = []export.Column[Contact]{
	{Header: "ID", Value: func(c *Contact) string { return export.Int(c.ID) }},
	{Header: "Name", Value: func(c *Contact) string { return c.Name }},
	{Header: "Email", Value: func(c *Contact) string { return c.Email }},
	{Header: "Message", Value: func(c *Contact) string { return c.Message }},
	{Header: "Read", Value: func(c *Contact) string { return export.YesNo(c.IsRead) }},
	{Header: "Date", Value: func(c *Contact) string { return export.Time(c.CreatedAt) }},
}

func (s *Service) Export(ctx context.Context, params ListParams, w io.Writer) (int, error) {
	cw, err := export.NewWriter(w, exportColumns)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Stream(ctx, params, cw.Write); err != nil {
		return cw.Rows(), fmt.Errorf("export contacts: %w", err)
	}

	if err := cw.Flush(); err != nil {
		return cw.Rows(), fmt.Errorf("export contacts: %w", err)
	}

	return cw.Rows(), nil
}

// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"fmt"
	"io"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/export"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, params ListParams) (*core.Page[Row], *Summary, error) {
	page, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	summary, err := s.repo.Summarize(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	return page, summary, nil
}

func (s *Service) History(ctx context.Context, userID int64, page int) (*core.Page[Payment], error) {
	return s.repo.ListForUser(ctx, userID, page)
}

func (s *Service) Recent(ctx context.Context, userID int64, limit int) ([]Payment, error) {
	return s.repo.RecentForUser(ctx, userID, limit)
}

var exportColumns = []export.Column[Row]{
	{Header: "ID", Value: func(p *Row) string { return export.Int(p.ID) }},
	{Header: "User", Value: func(p *Row) string { return p.UserName }},
	{Header: "Email", Value: func(p *Row) string { return p.UserEmail }},
	{Header: "Amount", Value: func(p *Row) string { return export.Money(p.Amount) }},
	{Header: "Plan", Value: func(p *Row) string { return p.Plan }},
	{Header: "Method", Value: func(p *Row) string { return export.Text(p.Method) }},
	{Header: "Status", Value: func(p *Row) string { return p.Status }},
	{Header: "Date", Value: func(p *Row) string { return export.Time(p.CreatedAt) }},
}

func (s *Service) Export(ctx context.Context, params ListParams, w io.Writer) (int, error) {
	cw, err := export.NewWriter(w, exportColumns)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Stream(ctx, params, cw.Write); err != nil {
		return cw.Rows(), fmt.Errorf("export payments: %w", err)
	}

	if err := cw.Flush(); err != nil {
		return cw.Rows(), fmt.Errorf("export payments: %w", err)
	}

	return cw.Rows(), nil
}

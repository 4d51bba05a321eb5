// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/balansai/internal/core"
)

type Repository interface {
	List(ctx context.Context, params ListParams) (*core.Page[Row], error)
	Stream(ctx context.Context, params ListParams, fn func(*Row) error) error
	Summarize(ctx context.Context, params ListParams) (*Summary, error)
	ListForUser(ctx context.Context, userID int64, page int) (*core.Page[Payment], error)
	RecentForUser(ctx context.Context, userID int64, limit int) ([]Payment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, params ListParams) (*core.Page[Row], error) {
	return core.List[Row](ctx, r.db, params.query())
}

func (r *repository) Stream(ctx context.Context, params ListParams, fn func(*Row) error) error {
	return core.Stream(ctx, r.db, params.query(), fn)
}

// Summarize totals completed payments within the same filters as List.
func (r *repository) Summarize(ctx context.Context, params ListParams) (*Summary, error) {
	f := params.filters()
	f.EqualAny("p.status", StatusCompleted)
	where, args := f.Where()

	query := `SELECT COALESCE(SUM(p.amount), 0) AS revenue, COUNT(*) AS completed FROM ` +
		rowSource + ` ` + where

	var s Summary
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		return nil, fmt.Errorf("summarize payments: %w", err)
	}

	return &s, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int64, page int) (*core.Page[Payment], error) {
	f := &core.Filters{}
	f.EqualAny("user_id", userID)

	return core.List[Payment](ctx, r.db, core.ListQuery{
		Select:  paymentColumns,
		From:    "payments",
		Filters: f,
		OrderBy: "created_at DESC, id DESC",
		Page:    core.PageRequest{Page: page, PageSize: HistoryPageSize},
	})
}

func (r *repository) RecentForUser(ctx context.Context, userID int64, limit int) ([]Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, userID, limit); err != nil {
		return nil, fmt.Errorf("recent payments: %w", err)
	}

	return payments, nil
}

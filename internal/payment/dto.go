// AngelaMos | 2026
// dto.go

package payment

import (
	"github.com/carterperez-dev/balansai/internal/core"
)

const (
	AdminPageSize   = 20
	HistoryPageSize = 10
)

const (
	rowColumns = `p.id, p.user_id, p.amount, p.plan, p.method, p.status, p.created_at,
		u.full_name AS user_name, u.email AS user_email`
	rowSource      = `payments p JOIN users u ON u.id = p.user_id`
	paymentColumns = `id, user_id, amount, plan, method, status, created_at`
)

type ListParams struct {
	Page   int
	Search string
	Plan   string
	Status string
}

func (p ListParams) filters() *core.Filters {
	f := &core.Filters{}
	f.Search(p.Search, "u.full_name", "u.email", "p.method")
	f.Equal("p.plan", p.Plan)
	f.Equal("p.status", p.Status)
	return f
}

func (p ListParams) query() core.ListQuery {
	return core.ListQuery{
		Select:  rowColumns,
		From:    rowSource,
		Filters: p.filters(),
		OrderBy: "p.created_at DESC, p.id DESC",
		Page:    core.PageRequest{Page: p.Page, PageSize: AdminPageSize},
	}
}

// Summary is the revenue headline over a filtered set of payments.
type Summary struct {
	Revenue   core.Amount `db:"revenue"`
	Completed int         `db:"completed"`
}

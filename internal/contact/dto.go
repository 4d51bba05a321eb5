// AngelaMos | 2026
// dto.go

package contact

import (
	"github.com/carterperez-dev/balansai/internal/core"
)

const AdminPageSize = 20

const contactColumns = `id, name, email, message, is_read, created_at`

type CreateRequest struct {
	Name    string `form:"name"    label:"Ism"    validate:"required,max=100"`
	Email   string `form:"email"   label:"Email"  validate:"required,email,max=255"`
	Message string `form:"message" label:"Xabar"  validate:"required,max=5000"`
}

// ListParams filters the admin inbox. Unread messages always sort first.
type ListParams struct {
	Page   int
	Search string
	Status string
}

func (p ListParams) filters() *core.Filters {
	f := &core.Filters{}
	f.Search(p.Search, "name", "email", "message")

	switch p.Status {
	case StatusRead:
		f.Raw("is_read = TRUE")
	case StatusUnread:
		f.Raw("is_read = FALSE")
	}

	return f
}

func (p ListParams) query() core.ListQuery {
	return core.ListQuery{
		Select:  contactColumns,
		From:    "contacts",
		Filters: p.filters(),
		OrderBy: "is_read ASC, created_at DESC, id DESC",
		Page:    core.PageRequest{Page: p.Page, PageSize: AdminPageSize},
	}
}

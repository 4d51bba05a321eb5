// AngelaMos | 2026
// dto.go

package user

import (
	"github.com/carterperez-dev/balansai/internal/core"
)

const AdminPageSize = 20

type AdminUpdateRequest struct {
	FullName string `form:"full_name" label:"Ism"       validate:"required,min=2,max=100"`
	Email    string `form:"email"     label:"Email"     validate:"required,email,max=255"`
	Phone    string `form:"phone"     label:"Telefon"   validate:"omitempty,max=30"`
	Company  string `form:"company"   label:"Kompaniya" validate:"omitempty,max=150"`
	PlanType string `form:"plan_type" label:"Tarif"     validate:"required,oneof=free pro enterprise"`
	IsActive bool   `form:"is_active"`
}

type ProfileRequest struct {
	FullName string `form:"full_name" label:"Ism"       validate:"required,min=2,max=100"`
	Phone    string `form:"phone"     label:"Telefon"   validate:"omitempty,max=30"`
	Company  string `form:"company"   label:"Kompaniya" validate:"omitempty,max=150"`
}

// ListParams are the admin listing filters. Empty values filter nothing.
type ListParams struct {
	Page   int
	Search string
	Plan   string
	Status string
}

func (p ListParams) filters() *core.Filters {
	f := &core.Filters{}
	f.Search(p.Search, "full_name", "email", "company")
	f.Equal("plan_type", p.Plan)

	switch p.Status {
	case StatusActive:
		f.Raw("is_active = TRUE")
	case StatusInactive:
		f.Raw("is_active = FALSE")
	}

	return f
}

func (p ListParams) query() core.ListQuery {
	return core.ListQuery{
		Select:  userColumns,
		From:    "users",
		Filters: p.filters(),
		OrderBy: "created_at DESC, id DESC",
		Page:    core.PageRequest{Page: p.Page, PageSize: AdminPageSize},
	}
}

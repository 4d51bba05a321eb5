// AngelaMos | 2026
// dto.go

package blog

import (
	"github.com/carterperez-dev/balansai/internal/core"
)

const (
	PublicPageSize = 9
	AdminPageSize  = 20
)

const postColumns = `id, title, slug, excerpt, content, category, tags, author,
		is_published, published_at, views, created_at, updated_at`

type PostRequest struct {
	Title       string `form:"title"    label:"Sarlavha"   validate:"required,max=255"`
	Slug        string `form:"slug"     label:"Slug"       validate:"omitempty,max=280"`
	Excerpt     string `form:"excerpt"  label:"Qisqacha"   validate:"omitempty,max=1000"`
	Content     string `form:"content"  label:"Matn"       validate:"required"`
	Category    string `form:"category" label:"Kategoriya" validate:"omitempty,max=100"`
	Tags        string `form:"tags"     label:"Teglar"     validate:"omitempty,max=255"`
	Author      string `form:"author"   label:"Muallif"    validate:"omitempty,max=100"`
	IsPublished bool   `form:"is_published"`
}

// PublicParams filters the public blog. Only published posts are listed.
type PublicParams struct {
	Page     int
	Search   string
	Category string
}

func (p PublicParams) query() core.ListQuery {
	f := &core.Filters{}
	f.Raw("is_published = TRUE")
	f.Search(p.Search, "title", "excerpt", "content")
	f.Equal("category", p.Category)

	return core.ListQuery{
		Select:  postColumns,
		From:    "blog_posts",
		Filters: f,
		OrderBy: "published_at DESC NULLS LAST, id DESC",
		Page:    core.PageRequest{Page: p.Page, PageSize: PublicPageSize},
	}
}

type AdminParams struct {
	Page   int
	Search string
	Status string
}

const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

func (p AdminParams) query() core.ListQuery {
	f := &core.Filters{}
	f.Search(p.Search, "title", "category", "author")

	switch p.Status {
	case StatusPublished:
		f.Raw("is_published = TRUE")
	case StatusDraft:
		f.Raw("is_published = FALSE")
	}

	return core.ListQuery{
		Select:  postColumns,
		From:    "blog_posts",
		Filters: f,
		OrderBy: "created_at DESC, id DESC",
		Page:    core.PageRequest{Page: p.Page, PageSize: AdminPageSize},
	}
}

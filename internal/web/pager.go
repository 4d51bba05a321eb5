// AngelaMos | 2026
// pager.go

package web

import (
	"net/http"
	"net/url"

	"github.com/carterperez-dev/balansai/internal/core"
)

// Pager is the pagination partial's input.
type Pager struct {
	Path       string
	Query      url.Values
	Page       int
	TotalPages int
	Total      int
}

func NewPager[T any](r *http.Request, p *core.Page[T]) Pager {
	return Pager{
		Path:       r.URL.Path,
		Query:      r.URL.Query(),
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Total:      p.Total,
	}
}

func (p Pager) HasPrev() bool { return p.Page > 1 }

func (p Pager) HasNext() bool { return p.Page < p.TotalPages }

func (p Pager) PrevPage() int { return p.Page - 1 }

func (p Pager) NextPage() int { return p.Page + 1 }

func (p Pager) Pages() []int {
	pages := make([]int, 0, p.TotalPages)
	for i := 1; i <= p.TotalPages; i++ {
		pages = append(pages, i)
	}
	return pages
}

// AngelaMos | 2026
// listing.go

package core

import (
	"context"
	"fmt"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage bounds page numbers so offsets cannot overflow.
	MaxPage         = 1_000_000
)

// Filters accumulates an AND-ed WHERE clause with numbered postgres
// placeholders. Filters whose value is empty add nothing.
type Filters struct {
	conditions []string
	args       []any
}

// Raw adds a fixed condition that takes no arguments.
func (f *Filters) Raw(condition string) *Filters {
	f.conditions = append(f.conditions, condition)
	return f
}

// Equal adds "column = value" when value is not empty.
func (f *Filters) Equal(column, value string) *Filters {
	if value == "" {
		return f
	}
	f.conditions = append(f.conditions, fmt.Sprintf("%s = %s", column, f.next(value)))
	return f
}

// EqualAny adds "column = value" for a typed value.
func (f *Filters) EqualAny(column string, value any) *Filters {
	f.conditions = append(f.conditions, fmt.Sprintf("%s = %s", column, f.next(value)))
	return f
}

// Bool adds "column = value" when value is set.
func (f *Filters) Bool(column string, value *bool) *Filters {
	if value == nil {
		return f
	}
	return f.EqualAny(column, *value)
}

// Search adds a case-insensitive substring match OR-ed across columns.
// The term is bound once and reused by every column.
func (f *Filters) Search(term string, columns ...string) *Filters {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return f
	}

	placeholder := f.next("%" + EscapeLike(term) + "%")
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s ILIKE %s", col, placeholder))
	}

	f.conditions = append(f.conditions, "("+strings.Join(parts, " OR ")+")")
	return f
}

// Where renders the clause (including the WHERE keyword) and its args.
func (f *Filters) Where() (string, []any) {
	if len(f.conditions) == 0 {
		return "", nil
	}
	args := make([]any, len(f.args))
	copy(args, f.args)
	return "WHERE " + strings.Join(f.conditions, " AND "), args
}

func (f *Filters) next(value any) string {
	f.args = append(f.args, value)
	return fmt.Sprintf("$%d", len(f.args))
}

// PageRequest is a 1-indexed page number and a page size.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ListQuery describes a paginated read over one table or join.
type ListQuery struct {
	Select  string
	From    string
	Filters *Filters
	OrderBy string
	Page    PageRequest
}

// List runs the COUNT and the page SELECT with the same WHERE clause
// and arguments. A page past the end yields no items and no error.
func List[T any](ctx context.Context, db DBTX, q ListQuery) (*Page[T], error) {
	q.Page.Normalize()

	filters := q.Filters
	if filters == nil {
		filters = &Filters{}
	}
	where, args := filters.Where()

	countQuery := joinSQL("SELECT COUNT(*) FROM "+q.From, where)

	var total int
	if err := db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("count %s: %w", q.From, err)
	}

	page := &Page[T]{
		Items:      []T{},
		Page:       q.Page.Page,
		PageSize:   q.Page.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, q.Page.PageSize),
	}

	if total == 0 || q.Page.Page > page.TotalPages {
		return page, nil
	}

	n := len(args)
	selectQuery := joinSQL(
		"SELECT "+q.Select+" FROM "+q.From,
		where,
		fmt.Sprintf("ORDER BY %s LIMIT $%d OFFSET $%d", q.OrderBy, n+1, n+2),
	)
	args = append(args, q.Page.PageSize, q.Page.Offset())

	if err := db.SelectContext(ctx, &page.Items, selectQuery, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", q.From, err)
	}

	return page, nil
}

// Stream runs the unpaginated SELECT and hands each scanned row to fn.
func Stream[T any](
	ctx context.Context,
	db DBTX,
	q ListQuery,
	fn func(row *T) error,
) error {
	filters := q.Filters
	if filters == nil {
		filters = &Filters{}
	}
	where, args := filters.Where()

	query := joinSQL("SELECT "+q.Select+" FROM "+q.From, where, "ORDER BY "+q.OrderBy)

	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("stream %s: %w", q.From, err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	for rows.Next() {
		var row T
		if err := rows.StructScan(&row); err != nil {
			return fmt.Errorf("scan %s: %w", q.From, err)
		}
		if err := fn(&row); err != nil {
			return err
		}
	}

	return rows.Err()
}

func joinSQL(parts ...string) string {
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

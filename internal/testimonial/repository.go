// AngelaMos | 2026
// repository.go

package testimonial

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/balansai/internal/core"
)

const testimonialColumns = `id, name, position, company, content, rating, display_order, is_active, created_at`

const displayOrder = `display_order ASC, created_at DESC, id DESC`

type Repository interface {
	Create(ctx context.Context, t *Testimonial) error
	Update(ctx context.Context, t *Testimonial) error
	GetByID(ctx context.Context, id int64) (*Testimonial, error)
	ToggleActive(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]Testimonial, error)
	ListActive(ctx context.Context, limit int) ([]Testimonial, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Testimonial) error {
	query := `
		INSERT INTO testimonials (name, position, company, content, rating, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		t.Name, t.Position, t.Company, t.Content, t.Rating, t.DisplayOrder, t.IsActive,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create testimonial: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, t *Testimonial) error {
	query := `
		UPDATE testimonials
		SET name = $2, position = $3, company = $4, content = $5,
		    rating = $6, display_order = $7, is_active = $8
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Position, t.Company, t.Content, t.Rating, t.DisplayOrder, t.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}

	return affectedOne("update testimonial", result)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Testimonial, error) {
	var t Testimonial
	err := r.db.GetContext(ctx, &t, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get testimonial: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get testimonial: %w", err)
	}
	return &t, nil
}

func (r *repository) ToggleActive(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := r.db.GetContext(ctx, &active,
		`UPDATE testimonials SET is_active = NOT is_active WHERE id = $1 RETURNING is_active`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("toggle testimonial: %w", core.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("toggle testimonial: %w", err)
	}
	return active, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return affectedOne("delete testimonial", result)
}

func (r *repository) ListAll(ctx context.Context) ([]Testimonial, error) {
	items := []Testimonial{}
	query := `SELECT ` + testimonialColumns + ` FROM testimonials ORDER BY ` + displayOrder
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return items, nil
}

func (r *repository) ListActive(ctx context.Context, limit int) ([]Testimonial, error) {
	items := []Testimonial{}
	query := `SELECT ` + testimonialColumns + ` FROM testimonials
		WHERE is_active = TRUE
		ORDER BY ` + displayOrder + `
		LIMIT $1`
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("list active testimonials: %w", err)
	}
	return items, nil
}

func affectedOne(op string, result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return nil
}

// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/balansai/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	CountUnread(ctx context.Context) (int, error)
	List(ctx context.Context, params ListParams) (*core.Page[Contact], error)
	Stream(ctx context.Context, params ListParams, fn func(*Contact) error) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at`

	err := r.db.QueryRowxContext(ctx, query, c.Name, c.Email, c.Message).
		Scan(&c.ID, &c.IsRead, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}

	return nil
}

// MarkRead is idempotent; only a missing id is an error.
func (r *repository) MarkRead(ctx context.Context, id int64) error {
	return r.execOne(ctx, "mark contact read", `UPDATE contacts SET is_read = TRUE WHERE id = $1`, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, "delete contact", `DELETE FROM contacts WHERE id = $1`, id)
}

func (r *repository) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM contacts WHERE is_read = FALSE`); err != nil {
		return 0, fmt.Errorf("count unread contacts: %w", err)
	}
	return n, nil
}

func (r *repository) List(ctx context.Context, params ListParams) (*core.Page[Contact], error) {
	return core.List[Contact](ctx, r.db, params.query())
}

func (r *repository) Stream(ctx context.Context, params ListParams, fn func(*Contact) error) error {
	return core.Stream(ctx, r.db, params.query(), fn)
}

func (r *repository) execOne(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

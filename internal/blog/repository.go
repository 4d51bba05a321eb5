// AngelaMos | 2026
// repository.go

package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/balansai/internal/core"
)

const SlugConstraint = "blog_posts_slug_key"

type Repository interface {
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*Post, error)
	IncrementViews(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListPublished(ctx context.Context, params PublicParams) (*core.Page[Post], error)
	ListAll(ctx context.Context, params AdminParams) (*core.Page[Post], error)
	Categories(ctx context.Context) ([]string, error)
	PublishedEntries(ctx context.Context) ([]SitemapEntry, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Create inserts post under post.Slug. A taken slug surfaces as a
// core.DuplicateKeyError on SlugConstraint.
func (r *repository) Create(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO blog_posts
			(title, slug, excerpt, content, category, tags, author, is_published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CASE WHEN $8 THEN NOW() END)
		RETURNING id, published_at, views, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.Category,
		post.Tags,
		post.Author,
		post.IsPublished,
	).Scan(&post.ID, &post.PublishedAt, &post.Views, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", core.MapDBError(err))
	}

	return nil
}

// Update keeps published_at once it has been set.
func (r *repository) Update(ctx context.Context, post *Post) error {
	query := `
		UPDATE blog_posts
		SET title = $2, slug = $3, excerpt = $4, content = $5, category = $6,
		    tags = $7, author = $8, is_published = $9,
		    published_at = CASE
		        WHEN $9 AND published_at IS NULL THEN NOW()
		        ELSE published_at
		    END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING published_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.Category,
		post.Tags,
		post.Author,
		post.IsPublished,
	).Scan(&post.PublishedAt, &post.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update post: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update post: %w", core.MapDBError(err))
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Post, error) {
	return r.getOne(ctx, "get post", `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id)
}

func (r *repository) GetPublishedBySlug(ctx context.Context, slug string) (*Post, error) {
	return r.getOne(ctx, "get post by slug",
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = $1 AND is_published = TRUE`, slug)
}

func (r *repository) getOne(ctx context.Context, op, query string, arg any) (*Post, error) {
	var post Post
	err := r.db.GetContext(ctx, &post, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &post, nil
}

func (r *repository) IncrementViews(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE blog_posts SET views = views + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete post: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListPublished(ctx context.Context, params PublicParams) (*core.Page[Post], error) {
	return core.List[Post](ctx, r.db, params.query())
}

func (r *repository) ListAll(ctx context.Context, params AdminParams) (*core.Page[Post], error) {
	return core.List[Post](ctx, r.db, params.query())
}

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM blog_posts
		WHERE is_published = TRUE AND category <> ''
		ORDER BY category`

	categories := []string{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) PublishedEntries(ctx context.Context) ([]SitemapEntry, error) {
	query := `
		SELECT slug, updated_at
		FROM blog_posts
		WHERE is_published = TRUE
		ORDER BY published_at DESC NULLS LAST, id DESC`

	entries := []SitemapEntry{}
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list published slugs: %w", err)
	}

	return entries, nil
}

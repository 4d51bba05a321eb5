// AngelaMos | 2026
// service.go

package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/balansai/internal/core"
)

const maxSlugAttempts = 5

var ErrSlugUnavailable = errors.New("no free slug")

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, req PostRequest) (*Post, error) {
	post := &Post{}
	applyRequest(post, req)

	err := insertWithUniqueSlug(ctx, baseSlug(req.Slug, req.Title), func(slug string) error {
		post.Slug = slug
		return s.repo.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// Update keeps the stored slug unless a new one is typed in, so
// renaming a post does not break its links.
func (s *Service) Update(ctx context.Context, id int64, req PostRequest) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	base := Slugify(req.Slug)
	if base == "" {
		base = post.Slug
	}

	applyRequest(post, req)

	err = insertWithUniqueSlug(ctx, base, func(slug string) error {
		post.Slug = slug
		return s.repo.Update(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// insertWithUniqueSlug runs attempt with base and, each time the slug
// index rejects it, with base plus a random hex suffix.
func insertWithUniqueSlug(ctx context.Context, base string, attempt func(slug string) error) error {
	slug := base

	for range maxSlugAttempts {
		err := attempt(slug)
		if err == nil {
			return nil
		}
		if !core.IsConstraintViolation(err, SlugConstraint) {
			return err
		}
		core.AddSpanEvent(ctx, "blog.slug_taken", attribute.String("slug", slug))

		suffix, err := core.RandomHex(slugSuffixLen)
		if err != nil {
			return fmt.Errorf("slug suffix: %w", err)
		}
		slug = base + "-" + suffix
	}

	return fmt.Errorf("%w after %d attempts: %s", ErrSlugUnavailable, maxSlugAttempts, base)
}

func applyRequest(post *Post, req PostRequest) {
	post.Title = strings.TrimSpace(req.Title)
	post.Excerpt = strings.TrimSpace(req.Excerpt)
	post.Content = strings.TrimSpace(req.Content)
	post.Category = strings.TrimSpace(req.Category)
	post.Tags = normalizeTags(req.Tags)
	post.Author = strings.TrimSpace(req.Author)
	post.IsPublished = req.IsPublished
}

func normalizeTags(tags string) string {
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}

func (s *Service) Get(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// View returns a published post and counts the view. A failed counter
// update is logged and does not fail the page.
func (s *Service) View(ctx context.Context, slug string) (*Post, error) {
	post, err := s.repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, post.ID); err != nil {
		s.logger.Warn("count post view", "error", err, "post_id", post.ID)
	} else {
		post.Views++
	}

	return post, nil
}

func (s *Service) ListPublished(ctx context.Context, params PublicParams) (*core.Page[Post], error) {
	return s.repo.ListPublished(ctx, params)
}

func (s *Service) ListAll(ctx context.Context, params AdminParams) (*core.Page[Post], error) {
	return s.repo.ListAll(ctx, params)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) PublishedEntries(ctx context.Context) ([]SitemapEntry, error) {
	return s.repo.PublishedEntries(ctx)
}

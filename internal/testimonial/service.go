// AngelaMos | 2026
// service.go

package testimonial

import (
	"context"
	"strings"
)

const HomePageLimit = 6

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req Request) (*Testimonial, error) {
	t := &Testimonial{}
	apply(t, req)
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id int64, req Request) (*Testimonial, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(t, req)
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func apply(t *Testimonial, req Request) {
	t.Name = strings.TrimSpace(req.Name)
	t.Position = strings.TrimSpace(req.Position)
	t.Company = strings.TrimSpace(req.Company)
	t.Content = strings.TrimSpace(req.Content)
	t.Rating = min(max(req.Rating, MinRating), MaxRating)
	t.DisplayOrder = max(req.DisplayOrder, 0)
	t.IsActive = req.IsActive
}

func (s *Service) Get(ctx context.Context, id int64) (*Testimonial, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ToggleActive(ctx context.Context, id int64) (bool, error) {
	return s.repo.ToggleActive(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Testimonial, error) {
	return s.repo.ListAll(ctx)
}

// Featured returns the active testimonials shown on the home page.
func (s *Service) Featured(ctx context.Context) ([]Testimonial, error) {
	return s.repo.ListActive(ctx, HomePageLimit)
}

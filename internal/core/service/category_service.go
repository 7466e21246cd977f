package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrCategoryExists
	}

	created, err := s.repo.Create(ctx, &domain.Category{Name: name, Slug: slug.Make(name)})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("category_id", created.ID).Str("slug", created.Slug).Msg("category created")
	return created, nil
}

// Update renames a category and recomputes its slug. Returns (nil, nil)
// when id matches nothing.
func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	return s.repo.Update(ctx, id, name, slug.Make(name))
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	return s.repo.FindBySlug(ctx, categorySlug)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

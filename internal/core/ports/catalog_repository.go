package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/virtualvault/storefront/internal/core/domain"
)

// CategoryRepository persists categories. Single lookups return (nil, nil)
// when nothing matches.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, id, name, slug string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// ProductFilter narrows a product listing. Zero values disable a criterion.
type ProductFilter struct {
	CategoryIDs []string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Keyword     string
	ExcludeID   string
	Skip        int64
	Limit       int64
}

// ProductRepository persists products. Listings never load photo bytes.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Update replaces every field of p except the photo, which is replaced
	// only when p.Photo is non-nil. Returns domain.ErrProductNotFound.
	Update(ctx context.Context, id string, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	Photo(ctx context.Context, id string) (*domain.Photo, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Count(ctx context.Context) (int64, error)
}

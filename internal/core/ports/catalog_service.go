package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/virtualvault/storefront/internal/core/domain"
)

type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  string
	Quantity    int
	Shipping    bool
	Photo       *domain.Photo
}

// PriceRange bounds a filter; both ends are inclusive.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Photo(ctx context.Context, id string) (*domain.Photo, error)
	Latest(ctx context.Context) ([]*domain.Product, error)
	Filter(ctx context.Context, categoryIDs []string, price *PriceRange) ([]*domain.Product, error)
	Count(ctx context.Context) (int64, error)
	Page(ctx context.Context, page int) ([]*domain.Product, error)
	Search(ctx context.Context, keyword string) ([]*domain.Product, error)
	Related(ctx context.Context, productID, categoryID string) ([]*domain.Product, error)
	ByCategory(ctx context.Context, slug string) (*domain.Category, []*domain.Product, error)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

const (
	latestProductsLimit = 12
	relatedProductLimit = 3
	defaultPageSize     = 6
)

// ProductService manages the catalogue. Listings never carry photo bytes;
// those are served separately by Photo.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	pageSize   int64
	log        zerolog.Logger
}

func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository, pageSize int, log zerolog.Logger) *ProductService {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &ProductService{products: products, categories: categories, pageSize: int64(pageSize), log: log}
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if err := checkProductInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := productFromInput(in)
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.log.Info().Str("product_id", created.ID).Str("slug", created.Slug).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	if err := checkProductInput(in); err != nil {
		return nil, err
	}

	p := productFromInput(in)
	p.UpdatedAt = time.Now().UTC()
	return s.products.Update(ctx, id, p)
}

// Delete is idempotent: removing an unknown product is not an error.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	return s.products.FindBySlug(ctx, productSlug)
}

func (s *ProductService) Photo(ctx context.Context, id string) (*domain.Photo, error) {
	return s.products.Photo(ctx, id)
}

func (s *ProductService) Latest(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx, ports.ProductFilter{Limit: latestProductsLimit})
}

func (s *ProductService) Filter(ctx context.Context, categoryIDs []string, price *ports.PriceRange) ([]*domain.Product, error) {
	filter := ports.ProductFilter{CategoryIDs: categoryIDs}
	if price != nil {
		lo, hi := price.Min, price.Max
		filter.MinPrice = &lo
		filter.MaxPrice = &hi
	}
	return s.products.List(ctx, filter)
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

// Page returns one page of products, newest first. Pages start at 1; lower
// values are treated as the first page.
func (s *ProductService) Page(ctx context.Context, page int) ([]*domain.Product, error) {
	if page < 1 {
		page = 1
	}
	return s.products.List(ctx, ports.ProductFilter{
		Skip:  int64(page-1) * s.pageSize,
		Limit: s.pageSize,
	})
}

func (s *ProductService) Search(ctx context.Context, keyword string) ([]*domain.Product, error) {
	return s.products.List(ctx, ports.ProductFilter{Keyword: keyword})
}

func (s *ProductService) Related(ctx context.Context, productID, categoryID string) ([]*domain.Product, error) {
	return s.products.List(ctx, ports.ProductFilter{
		CategoryIDs: []string{categoryID},
		ExcludeID:   productID,
		Limit:       relatedProductLimit,
	})
}

// ByCategory returns the category with the given slug and its products. An
// unknown slug yields a nil category and no products.
func (s *ProductService) ByCategory(ctx context.Context, categorySlug string) (*domain.Category, []*domain.Product, error) {
	category, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, nil, err
	}
	if category == nil {
		return nil, []*domain.Product{}, nil
	}

	products, err := s.products.List(ctx, ports.ProductFilter{CategoryIDs: []string{category.ID}})
	if err != nil {
		return nil, nil, err
	}
	return category, products, nil
}

func checkProductInput(in ports.ProductInput) error {
	if in.Price.IsNegative() {
		return domain.ErrNegativePrice
	}
	if in.Photo != nil && len(in.Photo.Data) >= domain.MaxPhotoBytes {
		return domain.ErrPhotoTooLarge
	}
	return nil
}

func productFromInput(in ports.ProductInput) *domain.Product {
	return &domain.Product{
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    domain.Category{ID: in.CategoryID},
		Quantity:    in.Quantity,
		Shipping:    in.Shipping,
		Photo:       in.Photo,
	}
}

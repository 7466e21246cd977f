package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

const collectionProducts = "products"

// ProductRepository implements ports.ProductRepository. Prices are stored as
// Decimal128; photos live inline and are projected out of every listing.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type photoDoc struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"contentType"`
}

type productDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Slug        string               `bson:"slug"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Category    primitive.ObjectID   `bson:"category"`
	Quantity    int                  `bson:"quantity"`
	Shipping    bool                 `bson:"shipping"`
	Photo       *photoDoc            `bson:"photo,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

// productView is a product read back through an aggregation with its
// category joined in.
type productView struct {
	productDoc `bson:",inline"`
	CategoryOf *categoryDoc `bson:"categoryOf,omitempty"`
}

func (d *productDoc) toDomain() *domain.Product {
	p := &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Price:       decimalFrom128(d.Price),
		Category:    domain.Category{ID: d.Category.Hex()},
		Quantity:    d.Quantity,
		Shipping:    d.Shipping,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.Photo != nil {
		p.Photo = &domain.Photo{Data: d.Photo.Data, ContentType: d.Photo.ContentType}
	}
	return p
}

func (v *productView) toDomain() *domain.Product {
	p := v.productDoc.toDomain()
	if v.CategoryOf != nil {
		p.Category = *v.CategoryOf.toDomain()
	}
	return p
}

func decimalTo128(d decimal.Decimal) (primitive.Decimal128, error) {
	out, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("price %s: %w", d, err)
	}
	return out, nil
}

func decimalFrom128(d primitive.Decimal128) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return out
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	doc, err := r.docFrom(p)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)

	created := doc.toDomain()
	created.Photo = nil
	return created, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, p *domain.Product) (*domain.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	doc, err := r.docFrom(p)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"name":        doc.Name,
		"slug":        doc.Slug,
		"description": doc.Description,
		"price":       doc.Price,
		"category":    doc.Category,
		"quantity":    doc.Quantity,
		"shipping":    doc.Shipping,
		"updatedAt":   doc.UpdatedAt,
	}
	if doc.Photo != nil {
		set["photo"] = doc.Photo
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"photo": 0})

	var updated productDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// FindBySlug returns (nil, nil) when no product has the slug.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	products, err := r.aggregate(ctx, bson.M{"slug": slug}, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return products[0], nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Product{}, nil
	}
	return r.aggregate(ctx, bson.M{"_id": bson.M{"$in": oids}}, 0, 0)
}

// Photo loads only the photo of a product. A product without a photo
// yields (nil, nil).
func (r *ProductRepository) Photo(ctx context.Context, id string) (*domain.Photo, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Photo *photoDoc `bson:"photo"`
	}
	opts := options.FindOne().SetProjection(bson.M{"photo": 1})
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product photo: %w", err)
	}
	if doc.Photo == nil || len(doc.Photo.Data) == 0 {
		return nil, nil
	}
	return &domain.Photo{Data: doc.Photo.Data, ContentType: doc.Photo.ContentType}, nil
}

func (r *ProductRepository) List(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	match, err := filterToMatch(f)
	if err != nil {
		return nil, err
	}
	return r.aggregate(ctx, match, f.Skip, f.Limit)
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func filterToMatch(f ports.ProductFilter) (bson.M, error) {
	match := bson.M{}
	if len(f.CategoryIDs) > 0 {
		match["category"] = bson.M{"$in": objectIDs(f.CategoryIDs)}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			lo, err := decimalTo128(*f.MinPrice)
			if err != nil {
				return nil, err
			}
			price["$gte"] = lo
		}
		if f.MaxPrice != nil {
			hi, err := decimalTo128(*f.MaxPrice)
			if err != nil {
				return nil, err
			}
			price["$lte"] = hi
		}
		match["price"] = price
	}
	if f.Keyword != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Keyword), Options: "i"}
		match["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}
	if f.ExcludeID != "" {
		if oid, ok := objectID(f.ExcludeID); ok {
			match["_id"] = bson.M{"$ne": oid}
		}
	}
	return match, nil
}

// aggregate runs match, newest-first sort, paging and the category join.
// limit <= 0 means no limit.
func (r *ProductRepository) aggregate(ctx context.Context, match bson.M, skip, limit int64) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$project", Value: bson.M{"photo": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         collectionCategories,
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryOf",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$categoryOf",
			"preserveNullAndEmptyArrays": true,
		}}},
	)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)

	var views []productView
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]*domain.Product, 0, len(views))
	for i := range views {
		out = append(out, views[i].toDomain())
	}
	return out, nil
}

func (r *ProductRepository) docFrom(p *domain.Product) (*productDoc, error) {
	price, err := decimalTo128(p.Price)
	if err != nil {
		return nil, err
	}
	category, _ := objectID(p.Category.ID)

	doc := &productDoc{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       price,
		Category:    category,
		Quantity:    p.Quantity,
		Shipping:    p.Shipping,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Photo != nil {
		doc.Photo = &photoDoc{Data: p.Photo.Data, ContentType: p.Photo.ContentType}
	}
	return doc, nil
}

func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/virtualvault/storefront/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Products  []primitive.ObjectID `bson:"products"`
	Payment   bson.M               `bson:"payment"`
	Buyer     primitive.ObjectID   `bson:"buyer"`
	Status    string               `bson:"status"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

// orderView is an order read back with its products and buyer joined in.
type orderView struct {
	orderDoc    `bson:",inline"`
	ProductDocs []productView `bson:"productDocs"`
	BuyerDocs   []userDoc     `bson:"buyerDocs"`
}

func (d *orderDoc) toDomain() *domain.Order {
	ids := make([]string, 0, len(d.Products))
	for _, oid := range d.Products {
		ids = append(ids, oid.Hex())
	}
	return &domain.Order{
		ID:         d.ID.Hex(),
		ProductIDs: ids,
		Products:   []domain.Product{},
		Buyer:      domain.BuyerRef{ID: d.Buyer.Hex()},
		Payment:    domain.Payment(d.Payment),
		Status:     domain.OrderStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// toDomain keeps the order's own product sequence, duplicates included;
// $lookup returns each joined product once in arbitrary order.
func (v *orderView) toDomain() *domain.Order {
	o := v.orderDoc.toDomain()

	byID := make(map[primitive.ObjectID]*domain.Product, len(v.ProductDocs))
	for i := range v.ProductDocs {
		byID[v.ProductDocs[i].ID] = v.ProductDocs[i].toDomain()
	}
	for _, oid := range v.Products {
		if p, ok := byID[oid]; ok {
			o.Products = append(o.Products, *p)
		}
	}

	if len(v.BuyerDocs) > 0 {
		o.Buyer.Name = v.BuyerDocs[0].Name
	}
	return o
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	buyer, ok := objectID(order.Buyer.ID)
	if !ok {
		return nil, fmt.Errorf("insert order: invalid buyer id %q", order.Buyer.ID)
	}

	doc := orderDoc{
		Products:  objectIDs(order.ProductIDs),
		Payment:   bson.M(order.Payment),
		Buyer:     buyer,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	buyer, ok := objectID(buyerID)
	if !ok {
		return []*domain.Order{}, nil
	}
	return r.aggregate(ctx, bson.M{"buyer": buyer}, false)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return r.aggregate(ctx, bson.M{}, true)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	oid, ok := objectID(orderID)
	if !ok {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) aggregate(ctx context.Context, match bson.M, newestFirst bool) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	if newestFirst {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": collectionProducts,
			"let":  bson.M{"ids": "$products"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$in": bson.A{"$_id", "$$ids"}}}},
				bson.M{"$project": bson.M{"photo": 0}},
			},
			"as": "productDocs",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": collectionUsers,
			"let":  bson.M{"buyer": "$buyer"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$buyer"}}}},
				bson.M{"$project": bson.M{"name": 1}},
			},
			"as": "buyerDocs",
		}}},
	)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var views []orderView
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	out := make([]*domain.Order, 0, len(views))
	for i := range views {
		out = append(out, views[i].toDomain())
	}
	return out, nil
}

func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "buyer", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

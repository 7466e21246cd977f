package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/virtualvault/storefront/internal/core/domain"
)

const collectionAudit = "audit_events"

// AuditRepository implements ports.AuditRepository on the audit_events collection.
type AuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

// Append persists one audit entry. Entries are never updated.
func (r *AuditRepository) Append(ctx context.Context, entry domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"kind":        entry.Kind,
		"subject_id":  entry.SubjectID,
		"actor_id":    entry.ActorID,
		"at":          entry.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if entry.Value != "" {
		doc["value"] = entry.Value
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "at", Value: -1}},
	})
	return err
}

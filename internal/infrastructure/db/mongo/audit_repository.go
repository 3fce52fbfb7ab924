package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

const auditCollection = "gate_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db        *mongo.Database
	retention time.Duration
}

// NewAuditRepository creates an AuditRepository. Events older than retention
// are expired by MongoDB; zero keeps them forever.
func NewAuditRepository(db *mongo.Database, retention time.Duration) *AuditRepository {
	return &AuditRepository{db: db, retention: retention}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

// EnsureIndexes creates the lookup and expiry indexes for the events
// collection.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "occurred_at", Value: -1}}},
	}
	if r.retention > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "recorded_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(r.retention.Seconds())),
		})
	}
	if _, err := r.db.Collection(auditCollection).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

// InsertEvent persists one gate event.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuditEvent) error {
	doc := bson.M{
		"session_id":  event.SessionID,
		"kind":        string(event.Kind),
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.PrincipalID != "" {
		doc["principal_id"] = event.PrincipalID
		doc["role"] = string(event.Role)
	}
	if event.Path != "" {
		doc["path"] = event.Path
	}
	if event.Slug != "" {
		doc["slug"] = event.Slug
	}
	if event.Feature != "" {
		doc["feature"] = string(event.Feature)
	}

	_, err := r.db.Collection(auditCollection).InsertOne(ctx, doc)
	return err
}

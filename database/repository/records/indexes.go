package records

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing the record store's query
// patterns: lookups by record ID, therapist caseload listing, per-client
// session history and the per-day session scan used for free slots.
func (r *mongoRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "therapistId", Value: 1}},
			Options: options.Index().SetName("therapist_idx"),
		},
	}
	if _, err := r.clients.Indexes().CreateMany(ctx, clientIndexes); err != nil {
		return fmt.Errorf("failed to create client indexes: %w", err)
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("client_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "startTime", Value: 1}},
			Options: options.Index().SetName("start_idx"),
		},
	}
	if _, err := r.sessions.Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	therapistIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_username"),
		},
	}
	if _, err := r.therapists.Indexes().CreateMany(ctx, therapistIndexes); err != nil {
		return fmt.Errorf("failed to create therapist indexes: %w", err)
	}
	return nil
}

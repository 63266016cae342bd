package mongodb

import (
	"context"
	"fmt"
	"time"

	"hr-selfservice/internal/adapters/persistence/repositories"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ReminderLogStore implements repositories.ReminderLogRepository on MongoDB
type ReminderLogStore struct {
	coll *mongo.Collection
}

// NewReminderLogStore creates the store and its unique index
func NewReminderLogStore(ctx context.Context, db *MongoDB) (*ReminderLogStore, error) {
	coll := db.Collection(reminderCollection)

	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "date", Value: 1}, {Key: "milestone", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, fmt.Errorf("create reminder_logs index: %w", err)
	}

	return &ReminderLogStore{coll: coll}, nil
}

var _ repositories.ReminderLogRepository = (*ReminderLogStore)(nil)

// Claim inserts the log entry; a duplicate key means it was already sent
func (s *ReminderLogStore) Claim(ctx context.Context, email, date string, milestone int, sentOn string) (bool, error) {
	_, err := s.coll.InsertOne(ctx, bson.M{
		"email":     email,
		"date":      date,
		"milestone": milestone,
		"sentOn":    sentOn,
		"createdAt": time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert reminder log: %w", err)
	}
	return true, nil
}

// Release removes a claim so the reminder can be sent again
func (s *ReminderLogStore) Release(ctx context.Context, email, date string, milestone int) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"email": email, "date": date, "milestone": milestone})
	return err
}

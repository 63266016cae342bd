// Package mongodb stores leave records, service requests, reminder logs,
// surveys and admins in MongoDB as an alternative to the SQL repositories.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names
const (
	leaveCollection    = "vacations"
	requestCollection  = "service_requests"
	reminderCollection = "reminder_logs"
	adminCollection    = "admins"
	surveyCollection   = "surveys"
)

// MongoDB wraps a connected client and its database
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client and verifies the primary is reachable
func Connect(uri, database string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logrus.WithField("database", database).Info("✅ Connected to MongoDB")

	return &MongoDB{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Collection returns a handle on name
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Ping checks the primary is reachable
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Drop removes the whole database. Used by integration tests.
func (m *MongoDB) Drop(ctx context.Context) error {
	return m.db.Drop(ctx)
}

// Close disconnects the client
func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/core/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type adminDoc struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func (d *adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// AdminStore implements repositories.AdminRepository on MongoDB
type AdminStore struct {
	coll *mongo.Collection
}

// NewAdminStore creates the store and its unique username index
func NewAdminStore(ctx context.Context, db *MongoDB) (*AdminStore, error) {
	coll := db.Collection(adminCollection)

	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, fmt.Errorf("create admins index: %w", err)
	}

	return &AdminStore{coll: coll}, nil
}

var _ repositories.AdminRepository = (*AdminStore)(nil)

// Create creates a new admin
func (s *AdminStore) Create(ctx context.Context, admin *domain.Admin) error {
	doc := adminDoc{
		ID:           repositories.NewID(),
		Username:     admin.Username,
		PasswordHash: admin.PasswordHash,
		CreatedAt:    time.Now(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Join(domain.ErrConflict, err)
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	*admin = *doc.toDomain()
	return nil
}

// GetByID gets an admin by ID
func (s *AdminStore) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByUsername gets an admin by username
func (s *AdminStore) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

// Count returns the number of admins
func (s *AdminStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *AdminStore) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	var doc adminDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

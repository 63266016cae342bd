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

type requestDoc struct {
	ID          string     `bson:"_id"`
	Email       string     `bson:"email"`
	HRCode      string     `bson:"hrCode"`
	Type        string     `bson:"type"`
	Dates       []string   `bson:"dates"`
	Reason      string     `bson:"reason"`
	Status      string     `bson:"status"`
	AdminNote   string     `bson:"adminNote"`
	SubmittedAt time.Time  `bson:"submittedAt"`
	ResolvedAt  *time.Time `bson:"resolvedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

func (d *requestDoc) toDomain() *domain.ServiceRequest {
	dates := d.Dates
	if dates == nil {
		dates = []string{}
	}
	return &domain.ServiceRequest{
		ID:          d.ID,
		Email:       d.Email,
		HRCode:      d.HRCode,
		Type:        domain.RequestType(d.Type),
		Dates:       dates,
		Reason:      d.Reason,
		Status:      domain.RequestStatus(d.Status),
		AdminNote:   d.AdminNote,
		SubmittedAt: d.SubmittedAt,
		ResolvedAt:  d.ResolvedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ServiceRequestStore implements repositories.ServiceRequestRepository on MongoDB
type ServiceRequestStore struct {
	coll *mongo.Collection
}

// NewServiceRequestStore creates the store and its indexes
func NewServiceRequestStore(ctx context.Context, db *MongoDB) (*ServiceRequestStore, error) {
	coll := db.Collection(requestCollection)

	if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// at most one pending work_from_home request per email
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("one_pending_wfh_per_email").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"type":   string(domain.RequestWorkFromHome),
					"status": string(domain.StatusPending),
				}),
		},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "submittedAt", Value: -1}}},
	}); err != nil {
		return nil, fmt.Errorf("create service_requests indexes: %w", err)
	}

	return &ServiceRequestStore{coll: coll}, nil
}

var _ repositories.ServiceRequestRepository = (*ServiceRequestStore)(nil)

// Create inserts a new request
func (s *ServiceRequestStore) Create(ctx context.Context, req *domain.ServiceRequest) error {
	now := time.Now()
	doc := requestDoc{
		ID:          repositories.NewID(),
		Email:       req.Email,
		HRCode:      req.HRCode,
		Type:        string(req.Type),
		Dates:       req.Dates,
		Reason:      req.Reason,
		Status:      string(req.Status),
		AdminNote:   req.AdminNote,
		SubmittedAt: req.SubmittedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Join(domain.ErrConflict, err)
		}
		return fmt.Errorf("insert service request: %w", err)
	}
	*req = *doc.toDomain()
	return nil
}

// UpsertPendingWorkFromHome edits or creates the caller's pending work_from_home request
func (s *ServiceRequestStore) UpsertPendingWorkFromHome(ctx context.Context, req *domain.ServiceRequest) (bool, error) {
	newID := repositories.NewID()
	now := time.Now()

	filter := bson.M{
		"email":  req.Email,
		"type":   string(domain.RequestWorkFromHome),
		"status": string(domain.StatusPending),
	}
	update := bson.M{
		"$set": bson.M{
			"hrCode":      req.HRCode,
			"dates":       req.Dates,
			"reason":      req.Reason,
			"submittedAt": req.SubmittedAt,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{"_id": newID, "adminNote": "", "createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc requestDoc
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		err = s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	}
	if err != nil {
		return false, fmt.Errorf("upsert work from home: %w", err)
	}

	*req = *doc.toDomain()
	return doc.ID != newID, nil
}

// GetByID gets a request by ID
func (s *ServiceRequestStore) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	var doc requestDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find service request: %w", err)
	}
	return doc.toDomain(), nil
}

// List lists requests, most recent submission first
func (s *ServiceRequestStore) List(ctx context.Context, filter domain.ServiceRequestFilter) ([]*domain.ServiceRequest, error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = string(filter.Type)
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find service requests: %w", err)
	}

	var docs []requestDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode service requests: %w", err)
	}

	requests := make([]*domain.ServiceRequest, 0, len(docs))
	for i := range docs {
		requests = append(requests, docs[i].toDomain())
	}
	return requests, nil
}

// Resolve approves or rejects a pending request
func (s *ServiceRequestStore) Resolve(ctx context.Context, id string, status domain.RequestStatus, adminNote string, at time.Time) (*domain.ServiceRequest, error) {
	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"adminNote":  adminNote,
		"resolvedAt": at,
		"updatedAt":  at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc requestDoc
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "status": string(domain.StatusPending)}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := s.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, domain.ErrAlreadyResolved
	}
	if err != nil {
		return nil, fmt.Errorf("resolve service request: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete deletes a request
func (s *ServiceRequestStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete service request: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// DeleteAll removes every request
func (s *ServiceRequestStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete service requests: %w", err)
	}
	return res.DeletedCount, nil
}

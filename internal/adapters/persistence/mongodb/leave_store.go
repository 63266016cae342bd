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

type leaveDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Year         int       `bson:"year"`
	FullName     string    `bson:"fullName"`
	HRCode       string    `bson:"hrCode"`
	Department   string    `bson:"department"`
	VacationDays []string  `bson:"vacationDays"`
	TotalDays    int       `bson:"totalDays"`
	SubmittedAt  time.Time `bson:"submittedAt"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (d *leaveDoc) toDomain() *domain.LeaveRecord {
	days := d.VacationDays
	if days == nil {
		days = []string{}
	}
	return &domain.LeaveRecord{
		ID:           d.ID,
		Email:        d.Email,
		FullName:     d.FullName,
		HRCode:       d.HRCode,
		Department:   domain.Department(d.Department),
		Year:         d.Year,
		VacationDays: days,
		TotalDays:    d.TotalDays,
		SubmittedAt:  d.SubmittedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// LeaveStore implements repositories.LeaveRepository on MongoDB
type LeaveStore struct {
	coll *mongo.Collection
}

// NewLeaveStore creates the store and its indexes
func NewLeaveStore(ctx context.Context, db *MongoDB) (*LeaveStore, error) {
	coll := db.Collection(leaveCollection)

	if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "year", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "year", Value: 1}}},
		{Keys: bson.D{{Key: "submittedAt", Value: -1}}},
	}); err != nil {
		return nil, fmt.Errorf("create vacations indexes: %w", err)
	}

	return &LeaveStore{coll: coll}, nil
}

var _ repositories.LeaveRepository = (*LeaveStore)(nil)

// Upsert inserts or replaces the plan for (email, year) with one FindOneAndUpdate
func (s *LeaveStore) Upsert(ctx context.Context, rec *domain.LeaveRecord) (bool, error) {
	newID := repositories.NewID()
	now := time.Now()

	filter := bson.M{"email": rec.Email, "year": rec.Year}
	update := bson.M{
		"$set": bson.M{
			"fullName":     rec.FullName,
			"hrCode":       rec.HRCode,
			"department":   string(rec.Department),
			"vacationDays": rec.VacationDays,
			"totalDays":    rec.TotalDays,
			"submittedAt":  rec.SubmittedAt,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{"_id": newID, "createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc leaveDoc
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// lost an upsert race; the winner's document now exists
		err = s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	}
	if err != nil {
		return false, fmt.Errorf("upsert vacation: %w", err)
	}

	*rec = *doc.toDomain()
	return doc.ID != newID, nil
}

// GetByID gets a leave record by ID
func (s *LeaveStore) GetByID(ctx context.Context, id string) (*domain.LeaveRecord, error) {
	var doc leaveDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vacation: %w", err)
	}
	return doc.toDomain(), nil
}

// List lists leave records, most recent submission first
func (s *LeaveStore) List(ctx context.Context, filter domain.LeaveFilter) ([]*domain.LeaveRecord, error) {
	query := bson.M{}
	if filter.Year != 0 {
		query["year"] = filter.Year
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find vacations: %w", err)
	}

	var docs []leaveDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode vacations: %w", err)
	}

	records := make([]*domain.LeaveRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toDomain())
	}
	return records, nil
}

// UpdateDays replaces the day set of an existing record
func (s *LeaveStore) UpdateDays(ctx context.Context, id string, days []string) (*domain.LeaveRecord, error) {
	update := bson.M{"$set": bson.M{
		"vacationDays": days,
		"totalDays":    len(days),
		"updatedAt":    time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc leaveDoc
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update vacation: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete deletes a leave record
func (s *LeaveStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete vacation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// DeleteAll removes every leave record
func (s *LeaveStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete vacations: %w", err)
	}
	return res.DeletedCount, nil
}

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hr-selfservice/internal/adapters/persistence/models"
	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/core/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type surveyDoc struct {
	ID                 string            `bson:"_id"`
	HRCode             string            `bson:"hrCode"`
	Email              string            `bson:"email"`
	FullName           string            `bson:"fullName"`
	Title              string            `bson:"title"`
	Experience         int               `bson:"experience"`
	Department         string            `bson:"department"`
	ProjectName        string            `bson:"projectName"`
	CurrentModules     []string          `bson:"currentModules"`
	OtherCurrentModule string            `bson:"otherCurrentModule"`
	TaskDescription    string            `bson:"taskDescription"`
	DeliveryDate       string            `bson:"deliveryDate"`
	Skills             map[string]string `bson:"skills"`
	CustomSkills       map[string]string `bson:"customSkills"`
	GainingExperience  string            `bson:"gainingExperience"`
	WillingToChange    string            `bson:"willingToChange"`
	Challenges         string            `bson:"challenges"`
	TrainingNeeds      string            `bson:"trainingNeeds"`
	ToolsNeeded        string            `bson:"toolsNeeded"`
	CareerGoals        string            `bson:"careerGoals"`
	Suggestions        string            `bson:"suggestions"`
	SubmittedAt        time.Time         `bson:"submittedAt"`
	CreatedAt          time.Time         `bson:"createdAt"`
	UpdatedAt          time.Time         `bson:"updatedAt"`
}

func (d *surveyDoc) toDomain() *domain.Survey {
	modules := d.CurrentModules
	if modules == nil {
		modules = []string{}
	}
	return &domain.Survey{
		ID:                 d.ID,
		HRCode:             d.HRCode,
		Email:              d.Email,
		FullName:           d.FullName,
		Title:              domain.Title(d.Title),
		Experience:         d.Experience,
		Department:         domain.Department(d.Department),
		ProjectName:        d.ProjectName,
		CurrentModules:     modules,
		OtherCurrentModule: d.OtherCurrentModule,
		TaskDescription:    d.TaskDescription,
		DeliveryDate:       d.DeliveryDate,
		Skills:             models.SkillsToDomain(d.Skills),
		CustomSkills:       models.SkillsToDomain(d.CustomSkills),
		GainingExperience:  domain.Answer(d.GainingExperience),
		WillingToChange:    domain.Answer(d.WillingToChange),
		Challenges:         d.Challenges,
		TrainingNeeds:      d.TrainingNeeds,
		ToolsNeeded:        d.ToolsNeeded,
		CareerGoals:        d.CareerGoals,
		Suggestions:        d.Suggestions,
		SubmittedAt:        d.SubmittedAt,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// answers holds the fields an update replaces
func answers(s *domain.Survey) bson.M {
	return bson.M{
		"email":              s.Email,
		"fullName":           s.FullName,
		"title":              string(s.Title),
		"experience":         s.Experience,
		"department":         string(s.Department),
		"projectName":        s.ProjectName,
		"currentModules":     s.CurrentModules,
		"otherCurrentModule": s.OtherCurrentModule,
		"taskDescription":    s.TaskDescription,
		"deliveryDate":       s.DeliveryDate,
		"skills":             models.SkillsFromDomain(s.Skills),
		"customSkills":       models.SkillsFromDomain(s.CustomSkills),
		"gainingExperience":  string(s.GainingExperience),
		"willingToChange":    string(s.WillingToChange),
		"challenges":         s.Challenges,
		"trainingNeeds":      s.TrainingNeeds,
		"toolsNeeded":        s.ToolsNeeded,
		"careerGoals":        s.CareerGoals,
		"suggestions":        s.Suggestions,
		"submittedAt":        s.SubmittedAt,
	}
}

// SurveyStore implements repositories.SurveyRepository on MongoDB
type SurveyStore struct {
	coll *mongo.Collection
}

// NewSurveyStore creates the store and its indexes
func NewSurveyStore(ctx context.Context, db *MongoDB) (*SurveyStore, error) {
	coll := db.Collection(surveyCollection)

	if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hrCode", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "submittedAt", Value: -1}}},
	}); err != nil {
		return nil, fmt.Errorf("create surveys indexes: %w", err)
	}

	return &SurveyStore{coll: coll}, nil
}

var _ repositories.SurveyRepository = (*SurveyStore)(nil)

// Create inserts a new survey
func (s *SurveyStore) Create(ctx context.Context, survey *domain.Survey) error {
	now := time.Now()
	doc := bson.M{"_id": repositories.NewID(), "hrCode": survey.HRCode, "createdAt": now, "updatedAt": now}
	for k, v := range answers(survey) {
		doc[k] = v
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Join(domain.ErrConflict, err)
		}
		return fmt.Errorf("insert survey: %w", err)
	}

	stored, err := s.GetByID(ctx, res.InsertedID.(string))
	if err != nil {
		return err
	}
	*survey = *stored
	return nil
}

// GetByID gets a survey by ID
func (s *SurveyStore) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByHRCode gets the survey of one employee
func (s *SurveyStore) GetByHRCode(ctx context.Context, hrCode string) (*domain.Survey, error) {
	return s.findOne(ctx, bson.M{"hrCode": hrCode})
}

func (s *SurveyStore) findOne(ctx context.Context, filter bson.M) (*domain.Survey, error) {
	var doc surveyDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSurveyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find survey: %w", err)
	}
	return doc.toDomain(), nil
}

// List lists surveys, most recent submission first
func (s *SurveyStore) List(ctx context.Context, filter domain.SurveyFilter) ([]*domain.Survey, error) {
	query := bson.M{}
	if filter.Department != "" {
		query["department"] = string(filter.Department)
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find surveys: %w", err)
	}

	var docs []surveyDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode surveys: %w", err)
	}

	surveys := make([]*domain.Survey, 0, len(docs))
	for i := range docs {
		surveys = append(surveys, docs[i].toDomain())
	}
	return surveys, nil
}

// Update replaces the answers stored for survey.HRCode with one FindOneAndUpdate
func (s *SurveyStore) Update(ctx context.Context, survey *domain.Survey) error {
	set := answers(survey)
	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc surveyDoc
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"hrCode": survey.HRCode}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrSurveyNotFound
	}
	if err != nil {
		return fmt.Errorf("update survey: %w", err)
	}
	*survey = *doc.toDomain()
	return nil
}

// Delete deletes a survey
func (s *SurveyStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSurveyNotFound
	}
	return nil
}

// DeleteAll removes every survey
func (s *SurveyStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete surveys: %w", err)
	}
	return res.DeletedCount, nil
}

package repositories

import (
	"context"

	"hr-selfservice/internal/adapters/persistence/models"
	"hr-selfservice/internal/core/domain"

	"gorm.io/gorm"
)

// surveyRepository implements SurveyRepository interface
type surveyRepository struct {
	db *gorm.DB
}

// NewSurveyRepository creates a new survey repository
func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

// Create inserts a new survey
func (r *surveyRepository) Create(ctx context.Context, survey *domain.Survey) error {
	row := models.SurveyFromDomain(survey)
	row.ID = NewID()
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, domain.ErrSurveyNotFound)
	}
	*survey = *row.ToDomain()
	return nil
}

// GetByID gets a survey by ID
func (r *surveyRepository) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	var row models.Survey
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrSurveyNotFound)
	}
	return row.ToDomain(), nil
}

// GetByHRCode gets the survey of one employee
func (r *surveyRepository) GetByHRCode(ctx context.Context, hrCode string) (*domain.Survey, error) {
	var row models.Survey
	if err := r.db.WithContext(ctx).Where("hr_code = ?", hrCode).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrSurveyNotFound)
	}
	return row.ToDomain(), nil
}

// List lists surveys, most recent submission first
func (r *surveyRepository) List(ctx context.Context, filter domain.SurveyFilter) ([]*domain.Survey, error) {
	query := r.db.WithContext(ctx).Model(&models.Survey{})
	if filter.Department != "" {
		query = query.Where("department = ?", string(filter.Department))
	}

	var rows []*models.Survey
	if err := query.Order("submitted_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	surveys := make([]*domain.Survey, 0, len(rows))
	for _, row := range rows {
		surveys = append(surveys, row.ToDomain())
	}
	return surveys, nil
}

// Update replaces the answers stored for survey.HRCode in one statement
func (r *surveyRepository) Update(ctx context.Context, survey *domain.Survey) error {
	row := models.SurveyFromDomain(survey)
	result := r.db.WithContext(ctx).Model(&models.Survey{}).
		Where("hr_code = ?", survey.HRCode).
		Select("*").Omit("id", "hr_code", "created_at").
		Updates(row)
	if result.Error != nil {
		return translate(result.Error, domain.ErrSurveyNotFound)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSurveyNotFound
	}

	stored, err := r.GetByHRCode(ctx, survey.HRCode)
	if err != nil {
		return err
	}
	*survey = *stored
	return nil
}

// Delete deletes a survey
func (r *surveyRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Survey{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSurveyNotFound
	}
	return nil
}

// DeleteAll removes every survey
func (r *surveyRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Survey{})
	return result.RowsAffected, result.Error
}

package repositories

import (
	"context"
	"time"

	"hr-selfservice/internal/adapters/persistence/models"
	"hr-selfservice/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// leaveRepository implements LeaveRepository interface
type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

// Upsert inserts or replaces the plan for (email, year)
func (r *leaveRepository) Upsert(ctx context.Context, rec *domain.LeaveRecord) (bool, error) {
	row := models.LeaveRecordFromDomain(rec)
	newID := NewID()
	row.ID = newID
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "hr_code", "department", "vacation_days", "total_days", "submitted_at", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return false, translate(err, domain.ErrRecordNotFound)
	}

	var stored models.LeaveRecord
	err = r.db.WithContext(ctx).Where("email = ? AND year = ?", rec.Email, rec.Year).First(&stored).Error
	if err != nil {
		return false, translate(err, domain.ErrRecordNotFound)
	}

	*rec = *stored.ToDomain()
	return stored.ID != newID, nil
}

// GetByID gets a leave record by ID
func (r *leaveRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRecord, error) {
	var row models.LeaveRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrRecordNotFound)
	}
	return row.ToDomain(), nil
}

// List lists leave records, most recent submission first
func (r *leaveRepository) List(ctx context.Context, filter domain.LeaveFilter) ([]*domain.LeaveRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.LeaveRecord{})
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var rows []*models.LeaveRecord
	if err := query.Order("submitted_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.LeaveRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.ToDomain())
	}
	return records, nil
}

// UpdateDays replaces the day set of an existing record
func (r *leaveRepository) UpdateDays(ctx context.Context, id string, days []string) (*domain.LeaveRecord, error) {
	var row models.LeaveRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrRecordNotFound)
	}

	row.VacationDays = days
	row.TotalDays = len(days)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, translate(err, domain.ErrRecordNotFound)
	}
	return row.ToDomain(), nil
}

// Delete deletes a leave record
func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.LeaveRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// DeleteAll removes every leave record
func (r *leaveRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.LeaveRecord{})
	return result.RowsAffected, result.Error
}

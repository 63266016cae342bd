package repositories

import (
	"context"

	"hr-selfservice/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reminderLogRepository implements ReminderLogRepository interface
type reminderLogRepository struct {
	db *gorm.DB
}

// NewReminderLogRepository creates a new reminder log repository
func NewReminderLogRepository(db *gorm.DB) ReminderLogRepository {
	return &reminderLogRepository{db: db}
}

// Claim inserts the log row unless it already exists
func (r *reminderLogRepository) Claim(ctx context.Context, email, date string, milestone int, sentOn string) (bool, error) {
	entry := &models.ReminderLog{
		Email:     email,
		Date:      date,
		Milestone: milestone,
		SentOn:    sentOn,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}, {Name: "date"}, {Name: "milestone"}},
		DoNothing: true,
	}).Create(entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Release removes a claim so the reminder can be sent again
func (r *reminderLogRepository) Release(ctx context.Context, email, date string, milestone int) error {
	return r.db.WithContext(ctx).
		Where("email = ? AND date = ? AND milestone = ?", email, date, milestone).
		Delete(&models.ReminderLog{}).Error
}

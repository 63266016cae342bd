package repositories

import (
	"context"
	"time"

	"hr-selfservice/internal/adapters/persistence/models"
	"hr-selfservice/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// serviceRequestRepository implements ServiceRequestRepository interface
type serviceRequestRepository struct {
	db *gorm.DB
}

// NewServiceRequestRepository creates a new service request repository
func NewServiceRequestRepository(db *gorm.DB) ServiceRequestRepository {
	return &serviceRequestRepository{db: db}
}

// Create inserts a new request
func (r *serviceRequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) error {
	row := models.ServiceRequestFromDomain(req)
	row.ID = NewID()
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, domain.ErrRequestNotFound)
	}
	*req = *row.ToDomain()
	return nil
}

// UpsertPendingWorkFromHome edits or creates the caller's pending work_from_home request
func (r *serviceRequestRepository) UpsertPendingWorkFromHome(ctx context.Context, req *domain.ServiceRequest) (bool, error) {
	req.Type = domain.RequestWorkFromHome
	req.Status = domain.StatusPending
	row := models.ServiceRequestFromDomain(req)
	newID := NewID()
	row.ID = newID
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pending_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"hr_code", "dates", "reason", "submitted_at", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return false, translate(err, domain.ErrRequestNotFound)
	}

	var stored models.ServiceRequest
	err = r.db.WithContext(ctx).Where("pending_key = ?", *row.PendingKey).First(&stored).Error
	if err != nil {
		return false, translate(err, domain.ErrRequestNotFound)
	}

	*req = *stored.ToDomain()
	return stored.ID != newID, nil
}

// GetByID gets a request by ID
func (r *serviceRequestRepository) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	var row models.ServiceRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrRequestNotFound)
	}
	return row.ToDomain(), nil
}

// List lists requests, most recent submission first
func (r *serviceRequestRepository) List(ctx context.Context, filter domain.ServiceRequestFilter) ([]*domain.ServiceRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceRequest{})
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var rows []*models.ServiceRequest
	if err := query.Order("submitted_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	requests := make([]*domain.ServiceRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, row.ToDomain())
	}
	return requests, nil
}

// Resolve approves or rejects a pending request with a conditional update
func (r *serviceRequestRepository) Resolve(ctx context.Context, id string, status domain.RequestStatus, adminNote string, at time.Time) (*domain.ServiceRequest, error) {
	result := r.db.WithContext(ctx).Model(&models.ServiceRequest{}).
		Where("id = ? AND status = ?", id, string(domain.StatusPending)).
		Updates(map[string]interface{}{
			"status":      string(status),
			"admin_note":  adminNote,
			"pending_key": nil,
			"resolved_at": at,
			"updated_at":  at,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrAlreadyResolved
	}
	return current, nil
}

// Delete deletes a request
func (r *serviceRequestRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ServiceRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// DeleteAll removes every request
func (r *serviceRequestRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ServiceRequest{})
	return result.RowsAffected, result.Error
}

package repositories

import (
	"context"

	"hr-selfservice/internal/adapters/persistence/models"
	"hr-selfservice/internal/core/domain"

	"gorm.io/gorm"
)

// adminRepository implements AdminRepository interface
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Create creates a new admin
func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	row := &models.Admin{
		ID:           NewID(),
		Username:     admin.Username,
		PasswordHash: admin.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, domain.ErrAdminNotFound)
	}
	*admin = *row.ToDomain()
	return nil
}

// GetByID gets an admin by ID
func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	var row models.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrAdminNotFound)
	}
	return row.ToDomain(), nil
}

// GetByUsername gets an admin by username
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var row models.Admin
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrAdminNotFound)
	}
	return row.ToDomain(), nil
}

// Count returns the number of admins
func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}

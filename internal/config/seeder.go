package config

import (
	"context"

	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/password"

	"github.com/sirupsen/logrus"
)

// devAdminPassword is only used in dev mode when ADMIN_PASSWORD is unset
const devAdminPassword = "admin123456"

// Seeder handles database seeding
type Seeder struct {
	admins repositories.AdminRepository
	cfg    *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(admins repositories.AdminRepository, cfg *Config) *Seeder {
	return &Seeder{admins: admins, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	logrus.Info("🌱 Running database seeders...")

	if err := s.seedAdmin(ctx); err != nil {
		logrus.WithError(err).Warn("⚠️ Admin seeder skipped")
	}

	logrus.Info("✅ Database seeding completed")
	return nil
}

// seedAdmin creates the first admin account when none exists
func (s *Seeder) seedAdmin(ctx context.Context) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plain := s.cfg.Admin.Password
	if plain == "" {
		if s.cfg.IsProd() {
			logrus.Warn("⚠️ Skipping admin seed: ADMIN_PASSWORD is not set")
			return nil
		}
		plain = devAdminPassword
	}
	if !password.ValidatePassword(plain) {
		logrus.Warn("⚠️ Skipping admin seed: ADMIN_PASSWORD is shorter than 8 characters")
		return nil
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}

	admin := &domain.Admin{Username: s.cfg.Admin.Username, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}

	logrus.WithField("username", admin.Username).Info("✅ Admin user created")
	return nil
}

// Package persistence opens the storage backend selected by configuration.
package persistence

import (
	"context"
	"fmt"

	"hr-selfservice/internal/adapters/persistence/models"
	"hr-selfservice/internal/adapters/persistence/mongodb"
	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/config"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Store bundles the repositories of one backend
type Store struct {
	Leaves    repositories.LeaveRepository
	Requests  repositories.ServiceRequestRepository
	Reminders repositories.ReminderLogRepository
	Admins    repositories.AdminRepository
	Surveys   repositories.SurveyRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Open connects to the configured backend, migrating or indexing it as needed
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.Database.Driver == config.DriverMongoDB {
		return openMongo(ctx, cfg)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		_ = config.CloseDatabase(db)
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	logrus.Info("✅ Database migration completed")

	return NewSQLStore(db), nil
}

// NewSQLStore wires the gorm repositories over db
func NewSQLStore(db *gorm.DB) *Store {
	return &Store{
		Leaves:    repositories.NewLeaveRepository(db),
		Requests:  repositories.NewServiceRequestRepository(db),
		Reminders: repositories.NewReminderLogRepository(db),
		Admins:    repositories.NewAdminRepository(db),
		Surveys:   repositories.NewSurveyRepository(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func(context.Context) error {
			return config.CloseDatabase(db)
		},
	}
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	db, err := mongodb.Connect(cfg.Database.MongoURI, cfg.Database.MongoDatabase)
	if err != nil {
		return nil, err
	}

	leaves, err := mongodb.NewLeaveStore(ctx, db)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	requests, err := mongodb.NewServiceRequestStore(ctx, db)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	reminders, err := mongodb.NewReminderLogStore(ctx, db)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	admins, err := mongodb.NewAdminStore(ctx, db)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	surveys, err := mongodb.NewSurveyStore(ctx, db)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}

	return &Store{
		Leaves:    leaves,
		Requests:  requests,
		Reminders: reminders,
		Admins:    admins,
		Surveys:   surveys,
		ping:      db.Ping,
		close:     db.Close,
	}, nil
}

// Ping checks the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return fmt.Errorf("store not initialized")
	}
	return s.ping(ctx)
}

// Close releases the backend connection
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

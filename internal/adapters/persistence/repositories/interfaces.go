package repositories

import (
	"context"
	"time"

	"hr-selfservice/internal/core/domain"
)

// LeaveRepository stores annual vacation plans, one per (email, year)
type LeaveRepository interface {
	// Upsert inserts rec or replaces the plan already stored for (rec.Email, rec.Year)
	// in a single atomic write. rec is refreshed with the stored row.
	Upsert(ctx context.Context, rec *domain.LeaveRecord) (isUpdate bool, err error)
	GetByID(ctx context.Context, id string) (*domain.LeaveRecord, error)
	List(ctx context.Context, filter domain.LeaveFilter) ([]*domain.LeaveRecord, error)
	UpdateDays(ctx context.Context, id string, days []string) (*domain.LeaveRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// ServiceRequestRepository stores ad hoc service requests
type ServiceRequestRepository interface {
	Create(ctx context.Context, req *domain.ServiceRequest) error
	// UpsertPendingWorkFromHome edits the caller's open work_from_home request or
	// creates one, in a single atomic write. req is refreshed with the stored row.
	UpsertPendingWorkFromHome(ctx context.Context, req *domain.ServiceRequest) (isUpdate bool, err error)
	GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter domain.ServiceRequestFilter) ([]*domain.ServiceRequest, error)
	// Resolve moves a pending request to a terminal status. Requests that are not
	// pending yield domain.ErrAlreadyResolved.
	Resolve(ctx context.Context, id string, status domain.RequestStatus, adminNote string, at time.Time) (*domain.ServiceRequest, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// ReminderLogRepository records which milestone reminders were already sent
type ReminderLogRepository interface {
	// Claim records (email, date, milestone) and reports false if it was already recorded.
	Claim(ctx context.Context, email, date string, milestone int, sentOn string) (bool, error)
	Release(ctx context.Context, email, date string, milestone int) error
}

// SurveyRepository stores skills surveys, one per HR code
type SurveyRepository interface {
	// Create stores a new survey. A second survey for the same HR code yields domain.ErrConflict.
	Create(ctx context.Context, survey *domain.Survey) error
	GetByID(ctx context.Context, id string) (*domain.Survey, error)
	GetByHRCode(ctx context.Context, hrCode string) (*domain.Survey, error)
	List(ctx context.Context, filter domain.SurveyFilter) ([]*domain.Survey, error)
	// Update replaces the answers of the survey stored for survey.HRCode. ID and
	// creation time are kept; survey is refreshed with the stored row.
	Update(ctx context.Context, survey *domain.Survey) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// AdminRepository stores HR staff accounts
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Count(ctx context.Context) (int64, error)
}

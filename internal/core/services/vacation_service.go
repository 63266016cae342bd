package services

import (
	"context"
	"strings"
	"time"

	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/dateutil"

	"github.com/sirupsen/logrus"
)

// VacationService handles annual vacation plans
type VacationService struct {
	leaveRepo repositories.LeaveRepository
	gate      *CredentialGate
	validator *RequestValidator
	notifier  *NotificationService
	clock     dateutil.Clock
}

// NewVacationService creates a new vacation service
func NewVacationService(
	leaveRepo repositories.LeaveRepository,
	gate *CredentialGate,
	validator *RequestValidator,
	notifier *NotificationService,
	clock dateutil.Clock,
) *VacationService {
	return &VacationService{
		leaveRepo: leaveRepo,
		gate:      gate,
		validator: validator,
		notifier:  notifier,
		clock:     clock,
	}
}

// SubmitResult is a stored plan plus whether it replaced an earlier submission
type SubmitResult struct {
	*domain.LeaveRecord
	IsUpdate bool `json:"isUpdate"`
}

// Submit validates and stores an annual plan, replacing any earlier plan for the same year
func (s *VacationService) Submit(ctx context.Context, in LeavePlanInput) (*SubmitResult, error) {
	if err := s.validator.RequireLeaveFields(in); err != nil {
		return nil, err
	}

	emp, err := s.gate.Validate(in.Email, in.HRCode)
	if err != nil {
		return nil, err
	}

	days, err := s.validator.LeavePlan(in, s.clock.Today())
	if err != nil {
		return nil, err
	}

	rec := &domain.LeaveRecord{
		Email:        emp.Email,
		FullName:     emp.Name,
		HRCode:       emp.HRCode,
		Department:   emp.Department,
		Year:         in.Year,
		VacationDays: days,
		TotalDays:    len(days),
		SubmittedAt:  time.Now(),
	}

	isUpdate, err := s.leaveRepo.Upsert(ctx, rec)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"email":    rec.Email,
		"year":     rec.Year,
		"days":     rec.TotalDays,
		"isUpdate": isUpdate,
	}).Info("🏖️ Vacation plan saved")

	if s.notifier != nil {
		logDelivery(s.notifier.NotifyLeaveSubmitted(ctx, rec, isUpdate), logrus.Fields{"email": rec.Email, "year": rec.Year})
	}

	return &SubmitResult{LeaveRecord: rec, IsUpdate: isUpdate}, nil
}

// List lists plans, optionally filtered by year and email
func (s *VacationService) List(ctx context.Context, filter domain.LeaveFilter) ([]*domain.LeaveRecord, error) {
	filter.Email = strings.ToLower(strings.TrimSpace(filter.Email))
	return s.leaveRepo.List(ctx, filter)
}

// Get returns one plan
func (s *VacationService) Get(ctx context.Context, id string) (*domain.LeaveRecord, error) {
	return s.leaveRepo.GetByID(ctx, id)
}

// UpdateDays lets an admin correct the day set of a stored plan
func (s *VacationService) UpdateDays(ctx context.Context, id string, days []string) (*domain.LeaveRecord, error) {
	rec, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := s.validator.AdminLeaveDays(days, rec.Year)
	if err != nil {
		return nil, err
	}

	updated, err := s.leaveRepo.UpdateDays(ctx, id, normalized)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"id": id, "days": updated.TotalDays}).Info("✏️ Vacation plan edited by admin")
	return updated, nil
}

// Delete removes one plan
func (s *VacationService) Delete(ctx context.Context, id string) error {
	if err := s.leaveRepo.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("id", id).Info("🗑️ Vacation plan deleted")
	return nil
}

// DeleteAll removes every plan
func (s *VacationService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.leaveRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	logrus.WithField("deleted", n).Warn("🗑️ All vacation plans cleared")
	return n, nil
}

// Stats builds the utilization report, optionally for a single year
func (s *VacationService) Stats(ctx context.Context, year int) (domain.VacationStats, error) {
	records, err := s.leaveRepo.List(ctx, domain.LeaveFilter{Year: year})
	if err != nil {
		return domain.VacationStats{}, err
	}
	return Analyze(records), nil
}

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

// ServiceRequestService handles work-from-home, urgent vacation and need-help requests
type ServiceRequestService struct {
	requestRepo repositories.ServiceRequestRepository
	gate        *CredentialGate
	validator   *RequestValidator
	notifier    *NotificationService
	clock       dateutil.Clock
}

// NewServiceRequestService creates a new service request service
func NewServiceRequestService(
	requestRepo repositories.ServiceRequestRepository,
	gate *CredentialGate,
	validator *RequestValidator,
	notifier *NotificationService,
	clock dateutil.Clock,
) *ServiceRequestService {
	return &ServiceRequestService{
		requestRepo: requestRepo,
		gate:        gate,
		validator:   validator,
		notifier:    notifier,
		clock:       clock,
	}
}

// RequestResult is a stored request plus whether it edited an open one
type RequestResult struct {
	*domain.ServiceRequest
	IsUpdate bool `json:"isUpdate"`
}

// UpdateStatusInput is an admin decision on a request
type UpdateStatusInput struct {
	Status    domain.RequestStatus `json:"status"`
	AdminNote string               `json:"adminNote"`
}

// Submit validates and stores a request. A work_from_home request edits the caller's
// pending one when it exists; other types always create a new request.
func (s *ServiceRequestService) Submit(ctx context.Context, in ServiceRequestInput) (*RequestResult, error) {
	if err := s.validator.RequireServiceFields(in); err != nil {
		return nil, err
	}

	emp, err := s.gate.Validate(in.Email, in.HRCode)
	if err != nil {
		return nil, err
	}

	dates, reason, err := s.validator.ServiceRequest(in, s.clock.Today())
	if err != nil {
		return nil, err
	}

	req := &domain.ServiceRequest{
		Email:       emp.Email,
		HRCode:      emp.HRCode,
		Type:        in.Type,
		Dates:       dates,
		Reason:      reason,
		Status:      domain.StatusPending,
		SubmittedAt: time.Now(),
	}

	isUpdate := false
	if in.Type == domain.RequestWorkFromHome {
		isUpdate, err = s.requestRepo.UpsertPendingWorkFromHome(ctx, req)
	} else {
		err = s.requestRepo.Create(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"id":       req.ID,
		"email":    req.Email,
		"type":     req.Type,
		"isUpdate": isUpdate,
	}).Info("📝 Service request saved")

	if s.notifier != nil {
		logDelivery(s.notifier.NotifyRequestSubmitted(ctx, req, emp, isUpdate), logrus.Fields{"id": req.ID, "email": req.Email})
	}

	return &RequestResult{ServiceRequest: req, IsUpdate: isUpdate}, nil
}

// UpdateStatus approves or rejects a pending request
func (s *ServiceRequestService) UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (*domain.ServiceRequest, error) {
	if !in.Status.Valid() {
		return nil, domain.NewValidationError("status", "Invalid status")
	}
	if !in.Status.Terminal() {
		return nil, domain.NewValidationError("status", "Status must be approved or rejected")
	}

	req, err := s.requestRepo.Resolve(ctx, id, in.Status, strings.TrimSpace(in.AdminNote), time.Now())
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"id": id, "status": req.Status}).Info("✅ Service request resolved")

	if s.notifier != nil {
		logDelivery(s.notifier.NotifyRequestResolved(ctx, req), logrus.Fields{"id": id, "email": req.Email})
	}
	return req, nil
}

// List lists requests filtered by type, status and email
func (s *ServiceRequestService) List(ctx context.Context, filter domain.ServiceRequestFilter) ([]*domain.ServiceRequest, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.NewValidationError("type", "Unknown request type: %s", filter.Type)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", "Invalid status")
	}
	filter.Email = strings.ToLower(strings.TrimSpace(filter.Email))
	return s.requestRepo.List(ctx, filter)
}

// Get returns one request
func (s *ServiceRequestService) Get(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

// Stats counts requests per type and status
func (s *ServiceRequestService) Stats(ctx context.Context, filter domain.ServiceRequestFilter) (domain.ServiceRequestStats, error) {
	requests, err := s.List(ctx, filter)
	if err != nil {
		return domain.ServiceRequestStats{}, err
	}
	return RequestStats(requests), nil
}

// Delete removes one request
func (s *ServiceRequestService) Delete(ctx context.Context, id string) error {
	if err := s.requestRepo.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("id", id).Info("🗑️ Service request deleted")
	return nil
}

// DeleteAll removes every request
func (s *ServiceRequestService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.requestRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	logrus.WithField("deleted", n).Warn("🗑️ All service requests cleared")
	return n, nil
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/core/domain"

	"github.com/sirupsen/logrus"
)

// SurveyService handles skills surveys
type SurveyService struct {
	surveyRepo repositories.SurveyRepository
	gate       *CredentialGate
	validator  *RequestValidator
	notifier   *NotificationService
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	surveyRepo repositories.SurveyRepository,
	gate *CredentialGate,
	validator *RequestValidator,
	notifier *NotificationService,
) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
		gate:       gate,
		validator:  validator,
		notifier:   notifier,
	}
}

// SendEmailInput is a personalized message written by HR
type SendEmailInput struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Submit validates and stores the caller's first survey
func (s *SurveyService) Submit(ctx context.Context, in SurveyInput) (*domain.Survey, error) {
	survey, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrSurveyExists
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"id":         survey.ID,
		"hrCode":     survey.HRCode,
		"department": survey.Department,
	}).Info("📋 Survey saved")

	s.notify(ctx, survey, false)
	return survey, nil
}

// UpdateByHRCode replaces the answers of an existing survey. The body must carry
// credentials for the same HR code.
func (s *SurveyService) UpdateByHRCode(ctx context.Context, hrCode string, in SurveyInput) (*domain.Survey, error) {
	if in.HRCode == "" {
		in.HRCode = hrCode
	}
	if in.HRCode != hrCode {
		return nil, domain.NewValidationError("hrCode", "HR Code does not match the survey being updated")
	}

	survey, err := s.prepare(in)
	if err != nil {
		return nil, err
	}
	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"id": survey.ID, "hrCode": survey.HRCode}).Info("✏️ Survey updated")

	s.notify(ctx, survey, true)
	return survey, nil
}

func (s *SurveyService) prepare(in SurveyInput) (*domain.Survey, error) {
	if err := s.validator.RequireSurveyFields(in); err != nil {
		return nil, err
	}

	emp, err := s.gate.Validate(in.Email, in.HRCode)
	if err != nil {
		return nil, err
	}

	survey, err := s.validator.Survey(in, emp)
	if err != nil {
		return nil, err
	}
	survey.SubmittedAt = time.Now()
	return survey, nil
}

func (s *SurveyService) notify(ctx context.Context, survey *domain.Survey, isUpdate bool) {
	if s.notifier == nil {
		return
	}
	logDelivery(s.notifier.NotifySurveySubmitted(ctx, survey, isUpdate), logrus.Fields{"id": survey.ID, "hrCode": survey.HRCode})
}

// List lists surveys, optionally for one department. "all" matches every department.
func (s *SurveyService) List(ctx context.Context, department string) ([]*domain.Survey, error) {
	var filter domain.SurveyFilter
	if department != "" && department != "all" {
		filter.Department = domain.Department(department)
		if !filter.Department.Valid() {
			return nil, domain.NewValidationError("department", "Unknown department: %s", department)
		}
	}
	return s.surveyRepo.List(ctx, filter)
}

// Get returns one survey
func (s *SurveyService) Get(ctx context.Context, id string) (*domain.Survey, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// Delete removes one survey
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("id", id).Info("🗑️ Survey deleted")
	return nil
}

// DeleteAll removes every survey
func (s *SurveyService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.surveyRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	logrus.WithField("deleted", n).Warn("🗑️ All surveys cleared")
	return n, nil
}

// SendEmail delivers a message composed by HR to one recipient
func (s *SurveyService) SendEmail(ctx context.Context, in SendEmailInput) error {
	in.To = strings.TrimSpace(in.To)
	in.Subject = strings.TrimSpace(in.Subject)
	if in.To == "" || in.Subject == "" || strings.TrimSpace(in.HTML) == "" {
		return domain.NewValidationError("", "to, subject, and html are required")
	}

	if err := s.notifier.SendCustom(ctx, in.To, in.Subject, in.HTML); err != nil {
		return err
	}
	logrus.WithField("to", in.To).Info("📧 Personalized email sent")
	return nil
}

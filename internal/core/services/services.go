package services

import (
	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/config"
	"hr-selfservice/internal/pkg/dateutil"
)

// Deps are the collaborators the services are built from
type Deps struct {
	Config    *config.Config
	Gate      *CredentialGate
	Leaves    repositories.LeaveRepository
	Requests  repositories.ServiceRequestRepository
	Reminders repositories.ReminderLogRepository
	Admins    repositories.AdminRepository
	Surveys   repositories.SurveyRepository
	Mailer    Mailer
	Clock     dateutil.Clock
}

// Services is the application's service layer
type Services struct {
	Gate      *CredentialGate
	Auth      *AuthService
	Vacations *VacationService
	Requests  *ServiceRequestService
	Reminders *ReminderService
	Surveys   *SurveyService
	Notifier  *NotificationService
}

// New wires every service over deps
func New(deps Deps) *Services {
	validator := NewRequestValidator()
	notifier := NewNotificationService(deps.Mailer, deps.Gate, deps.Config.Mail.AdminEmail)

	return &Services{
		Gate:      deps.Gate,
		Auth:      NewAuthService(deps.Admins, deps.Config),
		Vacations: NewVacationService(deps.Leaves, deps.Gate, validator, notifier, deps.Clock),
		Requests:  NewServiceRequestService(deps.Requests, deps.Gate, validator, notifier, deps.Clock),
		Reminders: NewReminderService(deps.Leaves, deps.Reminders, deps.Gate, notifier, deps.Clock, deps.Config.Mail.ManagerEmail),
		Surveys:   NewSurveyService(deps.Surveys, deps.Gate, validator, notifier),
		Notifier:  notifier,
	}
}

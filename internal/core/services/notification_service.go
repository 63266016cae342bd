package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"hr-selfservice/internal/core/domain"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Mailer delivers rendered messages
type Mailer interface {
	Send(ctx context.Context, msg domain.Email) error
}

// NotificationService renders and sends HR emails. Every Notify method waits for
// delivery and reports failures as *domain.DeliveryError; callers log them and carry on.
type NotificationService struct {
	mailer     Mailer
	gate       *CredentialGate
	adminEmail string
}

// NewNotificationService creates a new notification service
func NewNotificationService(mailer Mailer, gate *CredentialGate, adminEmail string) *NotificationService {
	return &NotificationService{
		mailer:     mailer,
		gate:       gate,
		adminEmail: adminEmail,
	}
}

// NotifyLeaveSubmitted mails the employee (lead copied) and the admin mailbox
func (s *NotificationService) NotifyLeaveSubmitted(ctx context.Context, rec *domain.LeaveRecord, isUpdate bool) error {
	verb := "New"
	if isUpdate {
		verb = "Updated"
	}
	data := map[string]any{
		"Record":   rec,
		"Name":     s.displayName(rec.Email, rec.FullName),
		"IsUpdate": isUpdate,
	}

	employeeMail := s.render("leave_submitted", fmt.Sprintf("%s Vacation Plan %d", verb, rec.Year), data, false)
	adminMail := s.render("leave_submitted", fmt.Sprintf("%s Vacation Plan: %s (%d)", verb, data["Name"], rec.Year), data, true)

	return s.deliverSubmission(ctx, "vacation plan", rec.Email, rec.Department, employeeMail, adminMail)
}

// NotifyRequestSubmitted mails the employee (lead copied) and the admin mailbox
func (s *NotificationService) NotifyRequestSubmitted(ctx context.Context, req *domain.ServiceRequest, emp *domain.Employee, isUpdate bool) error {
	verb := "New"
	if isUpdate {
		verb = "Updated"
	}
	data := map[string]any{
		"Request":   req,
		"Name":      s.displayName(req.Email, emp.Name),
		"TypeLabel": req.Type.Label(),
		"IsUpdate":  isUpdate,
	}

	employeeMail := s.render("request_submitted", fmt.Sprintf("%s %s Request", verb, req.Type.Label()), data, false)
	adminMail := s.render("request_submitted", fmt.Sprintf("%s %s Request: %s", verb, req.Type.Label(), data["Name"]), data, true)

	return s.deliverSubmission(ctx, "service request", req.Email, emp.Department, employeeMail, adminMail)
}

// NotifyRequestResolved tells the employee their request was approved or rejected
func (s *NotificationService) NotifyRequestResolved(ctx context.Context, req *domain.ServiceRequest) error {
	status := string(req.Status)
	if status != "" {
		status = strings.ToUpper(status[:1]) + status[1:]
	}
	data := map[string]any{
		"Request":   req,
		"Name":      s.displayName(req.Email, ""),
		"TypeLabel": req.Type.Label(),
	}

	msg, err := s.renderEmail("request_resolved", fmt.Sprintf("%s Request %s", req.Type.Label(), status), data)
	if err != nil {
		return &domain.DeliveryError{Kind: "status update", Recipients: []string{req.Email}, Err: err}
	}
	msg.To = []string{req.Email}
	return s.send(ctx, "status update", msg)
}

// NotifySurveySubmitted mails the employee (lead copied) and the admin mailbox
func (s *NotificationService) NotifySurveySubmitted(ctx context.Context, survey *domain.Survey, isUpdate bool) error {
	verb := "New"
	if isUpdate {
		verb = "Updated"
	}
	data := map[string]any{
		"Survey":   survey,
		"Name":     s.displayName(survey.Email, survey.FullName),
		"IsUpdate": isUpdate,
	}

	employeeMail := s.render("survey_submitted", fmt.Sprintf("%s Skills Survey", verb), data, false)
	adminMail := s.render("survey_submitted", fmt.Sprintf("%s Survey Submission - %s", verb, data["Name"]), data, true)

	return s.deliverSubmission(ctx, "survey", survey.Email, survey.Department, employeeMail, adminMail)
}

// SendCustom delivers HTML written by HR as is
func (s *NotificationService) SendCustom(ctx context.Context, to, subject, html string) error {
	return s.send(ctx, "custom email", domain.Email{To: []string{to}, Subject: subject, HTML: html})
}

// SendReminder mails one employee's upcoming vacation days to the manager
func (s *NotificationService) SendReminder(ctx context.Context, group domain.ReminderGroup) error {
	if group.To == "" {
		return &domain.DeliveryError{Kind: "reminder", Err: errors.New("no manager address configured")}
	}

	name := group.Name
	if name == "" {
		name = group.Employee
	}
	data := map[string]any{"Group": group}
	msg, err := s.renderEmail("reminder", fmt.Sprintf("Vacation Reminder: %s", name), data)
	if err != nil {
		return &domain.DeliveryError{Kind: "reminder", Recipients: []string{group.To}, Err: err}
	}
	msg.To = []string{group.To}
	if group.Cc != "" {
		msg.Cc = []string{group.Cc}
	}
	return s.send(ctx, "reminder", msg)
}

type renderedMail struct {
	msg domain.Email
	err error
}

func (s *NotificationService) render(name, subject string, data map[string]any, forAdmin bool) renderedMail {
	copied := make(map[string]any, len(data)+1)
	for k, v := range data {
		copied[k] = v
	}
	copied["ForAdmin"] = forAdmin
	msg, err := s.renderEmail(name, subject, copied)
	return renderedMail{msg: msg, err: err}
}

func (s *NotificationService) renderEmail(name, subject string, data map[string]any) (domain.Email, error) {
	data["Title"] = subject
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return domain.Email{}, fmt.Errorf("render %s: %w", name, err)
	}
	return domain.Email{Subject: subject, HTML: buf.String()}, nil
}

func (s *NotificationService) deliverSubmission(ctx context.Context, kind, email string, dept domain.Department, employeeMail, adminMail renderedMail) error {
	var errs []error

	if employeeMail.err != nil {
		errs = append(errs, &domain.DeliveryError{Kind: kind, Recipients: []string{email}, Err: employeeMail.err})
	} else {
		msg := employeeMail.msg
		msg.To = []string{email}
		if lead := s.gate.LeadEmailFor(email, dept); lead != "" {
			msg.Cc = []string{lead}
		}
		if err := s.send(ctx, kind, msg); err != nil {
			errs = append(errs, err)
		}
	}

	if s.adminEmail != "" {
		if adminMail.err != nil {
			errs = append(errs, &domain.DeliveryError{Kind: kind, Recipients: []string{s.adminEmail}, Err: adminMail.err})
		} else {
			msg := adminMail.msg
			msg.To = []string{s.adminEmail}
			if err := s.send(ctx, kind+" (admin copy)", msg); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

func (s *NotificationService) send(ctx context.Context, kind string, msg domain.Email) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		return &domain.DeliveryError{Kind: kind, Recipients: append(msg.To, msg.Cc...), Err: err}
	}
	logrus.WithFields(logrus.Fields{"kind": kind, "to": msg.To, "cc": msg.Cc}).Debug("📧 Email sent")
	return nil
}

func (s *NotificationService) displayName(email, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if e, ok := s.gate.Lookup(email); ok && e.Name != "" {
		return e.Name
	}
	return email
}

// logDelivery records a notification failure without surfacing it
func logDelivery(err error, fields logrus.Fields) {
	if err == nil {
		return
	}
	logrus.WithFields(fields).WithError(err).Error("❌ Notification delivery failed")
}

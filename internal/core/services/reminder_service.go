package services

import (
	"context"
	"fmt"

	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/dateutil"

	"github.com/sirupsen/logrus"
)

// ReminderService runs the milestone reminder check and mails what is due.
// Each (employee, date, milestone) is sent at most once thanks to the reminder log.
type ReminderService struct {
	leaveRepo    repositories.LeaveRepository
	logRepo      repositories.ReminderLogRepository
	gate         *CredentialGate
	notifier     *NotificationService
	clock        dateutil.Clock
	managerEmail string
}

// NewReminderService creates a new reminder service
func NewReminderService(
	leaveRepo repositories.LeaveRepository,
	logRepo repositories.ReminderLogRepository,
	gate *CredentialGate,
	notifier *NotificationService,
	clock dateutil.Clock,
	managerEmail string,
) *ReminderService {
	return &ReminderService{
		leaveRepo:    leaveRepo,
		logRepo:      logRepo,
		gate:         gate,
		notifier:     notifier,
		clock:        clock,
		managerEmail: managerEmail,
	}
}

// ReminderRun is the outcome of one check
type ReminderRun struct {
	Message   string                 `json:"message"`
	Sent      int                    `json:"sent"`
	Date      string                 `json:"date"`
	Reminders []domain.ReminderGroup `json:"reminders"`
}

// RunToday checks reminders for the clock's current day
func (s *ReminderService) RunToday(ctx context.Context) (*ReminderRun, error) {
	return s.Run(ctx, s.clock.Today())
}

// Run checks reminders for today and sends the ones not sent before.
// Reminders lists every due group; Sent counts the groups delivered by this run.
func (s *ReminderService) Run(ctx context.Context, today string) (*ReminderRun, error) {
	records, err := s.upcomingRecords(ctx, today)
	if err != nil {
		return nil, err
	}

	batch := CheckReminders(records, today, s.gate, s.managerEmail)
	run := &ReminderRun{Date: today, Reminders: batch.Groups}

	for _, group := range batch.Groups {
		pending, err := s.claim(ctx, group, today)
		if err != nil {
			return nil, err
		}
		if len(pending.Days) == 0 {
			continue
		}

		if err := s.notifier.SendReminder(ctx, pending); err != nil {
			logDelivery(err, logrus.Fields{"employee": group.Employee, "date": today})
			s.release(ctx, pending)
			continue
		}
		run.Sent++
	}

	switch {
	case len(batch.Groups) == 0:
		run.Message = "No reminders due today"
	default:
		run.Message = fmt.Sprintf("Sent %d reminder(s) for %d employee(s)", run.Sent, len(batch.Groups))
	}

	logrus.WithFields(logrus.Fields{
		"date": today,
		"due":  len(batch.Groups),
		"sent": run.Sent,
	}).Info("⏰ Vacation reminder check completed")

	return run, nil
}

// upcomingRecords loads the plans that may hold a day inside the reminder horizon
func (s *ReminderService) upcomingRecords(ctx context.Context, today string) ([]*domain.LeaveRecord, error) {
	horizon, err := dateutil.AddDays(today, ReminderHorizon)
	if err != nil {
		return nil, domain.NewValidationError("date", "Invalid date: %q", today)
	}
	first, _ := dateutil.Year(today)
	last, _ := dateutil.Year(horizon)

	var records []*domain.LeaveRecord
	for year := first; year <= last; year++ {
		batch, err := s.leaveRepo.List(ctx, domain.LeaveFilter{Year: year})
		if err != nil {
			return nil, err
		}
		records = append(records, batch...)
	}
	return records, nil
}

// claim keeps the days of group that have not been reminded about yet.
// On error the days claimed so far are released so the next run retries them.
func (s *ReminderService) claim(ctx context.Context, group domain.ReminderGroup, today string) (domain.ReminderGroup, error) {
	pending := group
	pending.Days = nil
	for _, d := range group.Days {
		ok, err := s.logRepo.Claim(ctx, group.Employee, d.Date, d.DaysAway, today)
		if err != nil {
			s.release(ctx, pending)
			pending.Days = nil
			return pending, err
		}
		if ok {
			pending.Days = append(pending.Days, d)
		}
	}
	return pending, nil
}

func (s *ReminderService) release(ctx context.Context, group domain.ReminderGroup) {
	for _, d := range group.Days {
		if err := s.logRepo.Release(ctx, group.Employee, d.Date, d.DaysAway); err != nil {
			logrus.WithError(err).WithField("employee", group.Employee).Warn("⚠️ Failed to release reminder claim")
		}
	}
}

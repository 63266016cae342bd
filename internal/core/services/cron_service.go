package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// reminderJobTimeout bounds one scheduled reminder run
const reminderJobTimeout = 2 * time.Minute

// CronService triggers the daily vacation reminder check
type CronService struct {
	cron      *cron.Cron
	reminders *ReminderService
	schedule  string
}

// NewCronService creates a scheduler in the organization's time zone
func NewCronService(reminders *ReminderService, schedule string, loc *time.Location) *CronService {
	if loc == nil {
		loc = time.Local
	}
	return &CronService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cron.PrintfLogger(logrus.StandardLogger())),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logrus.StandardLogger()))),
		),
		reminders: reminders,
		schedule:  schedule,
	}
}

// Start registers the reminder job and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runReminders); err != nil {
		return err
	}
	s.cron.Start()
	logrus.WithField("schedule", s.schedule).Info("🚀 Reminder cron started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	logrus.Info("🛑 Reminder cron stopped")
}

func (s *CronService) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
	defer cancel()

	if _, err := s.reminders.RunToday(ctx); err != nil {
		logrus.WithError(err).Error("❌ Scheduled reminder check failed")
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/adapters/persistence/testdb"
	"hr-selfservice/internal/config"
	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/dateutil"

	"github.com/stretchr/testify/require"
)

const (
	testToday   = "2026-03-10"
	testManager = "manager@example.com"
	testAdmin   = "hr-admin@example.com"
)

func ptr[T any](v T) *T { return &v }

func testRoster() []domain.Employee {
	return []domain.Employee{
		{HRCode: "1001", Email: "lead.dlms@example.com", Name: "Dana Lead", Department: domain.DepartmentDLMS, Title: ptr(domain.TitleTeamLead)},
		{HRCode: "1002", Email: "alex@example.com", Name: "Alex Doe", Department: domain.DepartmentDLMS, Experience: ptr(3), Title: ptr(domain.TitleMid)},
		{HRCode: "1003", Email: "sam@example.com", Name: "Sam Roe", Department: domain.DepartmentDLMS},
		{HRCode: "4001", Email: "kim@example.com", Name: "Kim Poe", Department: domain.DepartmentTooling},
	}
}

func newTestGate(t *testing.T) *CredentialGate {
	t.Helper()
	gate, err := NewCredentialGate(testRoster())
	require.NoError(t, err)
	return gate
}

// fakeMailer records messages and fails for recipients listed in failFor
type fakeMailer struct {
	mu      sync.Mutex
	sent    []domain.Email
	failFor map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, msg domain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, to := range msg.To {
		if m.failFor[to] {
			return errors.New("smtp: 550 mailbox unavailable")
		}
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) messages() []domain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Email, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *fakeMailer) bySubject(prefix string) []domain.Email {
	var out []domain.Email
	for _, msg := range m.messages() {
		if strings.HasPrefix(msg.Subject, prefix) {
			out = append(out, msg)
		}
	}
	return out
}

type testEnv struct {
	svc    *Services
	mailer *fakeMailer
	repos  struct {
		leaves    repositories.LeaveRepository
		requests  repositories.ServiceRequestRepository
		reminders repositories.ReminderLogRepository
		admins    repositories.AdminRepository
		surveys   repositories.SurveyRepository
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testdb.Open(t)

	env := &testEnv{mailer: &fakeMailer{failFor: map[string]bool{}}}
	env.repos.leaves = repositories.NewLeaveRepository(db)
	env.repos.requests = repositories.NewServiceRequestRepository(db)
	env.repos.reminders = repositories.NewReminderLogRepository(db)
	env.repos.admins = repositories.NewAdminRepository(db)
	env.repos.surveys = repositories.NewSurveyRepository(db)

	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenMins: 60},
		Mail:    config.MailConfig{AdminEmail: testAdmin, ManagerEmail: testManager},
	}

	env.svc = New(Deps{
		Config:    cfg,
		Gate:      newTestGate(t),
		Leaves:    env.repos.leaves,
		Requests:  env.repos.requests,
		Reminders: env.repos.reminders,
		Admins:    env.repos.admins,
		Surveys:   env.repos.surveys,
		Mailer:    env.mailer,
		Clock:     dateutil.FixedClock(testToday),
	})
	return env
}

func mustAddDays(t *testing.T, day string, n int) string {
	t.Helper()
	out, err := dateutil.AddDays(day, n)
	require.NoError(t, err)
	return out
}

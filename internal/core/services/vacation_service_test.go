package services

import (
	"context"
	"testing"

	"hr-selfservice/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plan(days ...string) LeavePlanInput {
	return LeavePlanInput{Email: "Alex@Example.com", HRCode: "1002", Year: 2026, VacationDays: days}
}

func TestVacationService_SubmitThenResubmitReplaces(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Vacations.Submit(ctx, plan("2026-07-01", "2026-07-02", "2026-07-02"))
	require.NoError(t, err)
	assert.False(t, first.IsUpdate)
	assert.Equal(t, "alex@example.com", first.Email)
	assert.Equal(t, "Alex Doe", first.FullName)
	assert.Equal(t, domain.DepartmentDLMS, first.Department)
	assert.Equal(t, 2, first.TotalDays)

	second, err := env.svc.Vacations.Submit(ctx, plan("2026-08-03"))
	require.NoError(t, err)
	assert.True(t, second.IsUpdate)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"2026-08-03"}, second.VacationDays)

	all, err := env.svc.Vacations.List(ctx, domain.LeaveFilter{Email: "ALEX@example.com"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"2026-08-03"}, all[0].VacationDays)
	assert.Equal(t, 1, all[0].TotalDays)
}

func TestVacationService_SubmitMailsEmployeeLeadAndAdmin(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Vacations.Submit(context.Background(), plan("2026-07-01"))
	require.NoError(t, err)

	msgs := env.mailer.bySubject("New Vacation Plan")
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{"alex@example.com"}, msgs[0].To)
	assert.Equal(t, []string{"lead.dlms@example.com"}, msgs[0].Cc)
	assert.Equal(t, []string{testAdmin}, msgs[1].To)
	assert.Contains(t, msgs[1].HTML, "2026-07-01")

	_, err = env.svc.Vacations.Submit(context.Background(), plan("2026-07-02"))
	require.NoError(t, err)
	assert.Len(t, env.mailer.bySubject("Updated Vacation Plan"), 2)
}

func TestVacationService_DeliveryFailureDoesNotFailSubmit(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.failFor["alex@example.com"] = true
	env.mailer.failFor[testAdmin] = true

	result, err := env.svc.Vacations.Submit(context.Background(), plan("2026-07-01"))
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
}

func TestVacationService_SubmitRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Vacations.Submit(ctx, LeavePlanInput{Email: "alex@example.com", HRCode: "9999", Year: 2026, VacationDays: []string{"2026-07-01"}})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	_, err = env.svc.Vacations.Submit(ctx, plan("2026-03-09"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := env.svc.Vacations.List(ctx, domain.LeaveFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "failed submissions store nothing")
	assert.Empty(t, env.mailer.messages())
}

func TestVacationService_AdminEditAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.svc.Vacations.Submit(ctx, plan("2026-07-01"))
	require.NoError(t, err)

	updated, err := env.svc.Vacations.UpdateDays(ctx, result.ID, []string{"2026-01-02", "2026-07-01", "2026-01-02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-02", "2026-07-01"}, updated.VacationDays)
	assert.Equal(t, 2, updated.TotalDays)

	_, err = env.svc.Vacations.UpdateDays(ctx, result.ID, []string{"2025-12-31"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, env.svc.Vacations.Delete(ctx, result.ID))
	_, err = env.svc.Vacations.Get(ctx, result.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, env.svc.Vacations.Delete(ctx, result.ID), domain.ErrNotFound)
}

func TestVacationService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Vacations.Submit(ctx, plan("2026-05-01", "2026-05-04"))
	require.NoError(t, err)
	_, err = env.svc.Vacations.Submit(ctx, LeavePlanInput{Email: "sam@example.com", HRCode: "1003", Year: 2026, VacationDays: []string{"2026-05-01"}})
	require.NoError(t, err)

	stats, err := env.svc.Vacations.Stats(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSubmissions)
	assert.Equal(t, 3, stats.TotalVacationDays)
	assert.Equal(t, 1.5, stats.AverageDaysPerPerson)
	assert.Equal(t, 3, stats.MonthlyDistribution[4])
	require.Len(t, stats.OverlapDates, 1)
	assert.Equal(t, "2026-05-01", stats.OverlapDates[0].Date)

	stats, err = env.svc.Vacations.Stats(ctx, 2027)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalSubmissions)

	n, err := env.svc.Vacations.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

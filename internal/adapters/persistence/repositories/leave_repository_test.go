package repositories_test

import (
	"context"
	"testing"
	"time"

	"hr-selfservice/internal/adapters/persistence/repositories"
	"hr-selfservice/internal/adapters/persistence/testdb"
	"hr-selfservice/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeave(email string, year int, days ...string) *domain.LeaveRecord {
	return &domain.LeaveRecord{
		Email:        email,
		FullName:     "Test User",
		HRCode:       "1001",
		Department:   domain.DepartmentDLMS,
		Year:         year,
		VacationDays: days,
		TotalDays:    len(days),
		SubmittedAt:  time.Now(),
	}
}

func TestLeaveRepository_UpsertReplacesByEmailAndYear(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewLeaveRepository(testdb.Open(t))

	// GIVEN a first submission
	first := newLeave("a@example.com", 2026, "2026-01-05", "2026-01-06")
	isUpdate, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.False(t, isUpdate)
	require.NotEmpty(t, first.ID)

	// WHEN the same employee resubmits for the same year
	second := newLeave("a@example.com", 2026, "2026-03-01")
	isUpdate, err = repo.Upsert(ctx, second)
	require.NoError(t, err)

	// THEN the record is replaced in place
	assert.True(t, isUpdate)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"2026-03-01"}, second.VacationDays)
	assert.Equal(t, 1, second.TotalDays)

	all, err := repo.List(ctx, domain.LeaveFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLeaveRepository_DifferentYearsAreSeparateRecords(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewLeaveRepository(testdb.Open(t))

	_, err := repo.Upsert(ctx, newLeave("a@example.com", 2026, "2026-01-05"))
	require.NoError(t, err)
	isUpdate, err := repo.Upsert(ctx, newLeave("a@example.com", 2027, "2027-01-05"))
	require.NoError(t, err)
	assert.False(t, isUpdate)

	byYear, err := repo.List(ctx, domain.LeaveFilter{Year: 2027})
	require.NoError(t, err)
	require.Len(t, byYear, 1)
	assert.Equal(t, 2027, byYear[0].Year)

	byEmail, err := repo.List(ctx, domain.LeaveFilter{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)
}

func TestLeaveRepository_UpdateDaysAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewLeaveRepository(testdb.Open(t))

	rec := newLeave("a@example.com", 2026, "2026-01-05")
	_, err := repo.Upsert(ctx, rec)
	require.NoError(t, err)

	updated, err := repo.UpdateDays(ctx, rec.ID, []string{"2026-02-01", "2026-02-02"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalDays)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02-01", "2026-02-02"}, got.VacationDays)

	require.NoError(t, repo.Delete(ctx, rec.ID))
	_, err = repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, rec.ID), domain.ErrNotFound)
}

func TestLeaveRepository_DeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewLeaveRepository(testdb.Open(t))

	_, err := repo.Upsert(ctx, newLeave("a@example.com", 2026, "2026-01-05"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, newLeave("b@example.com", 2026, "2026-01-05"))
	require.NoError(t, err)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

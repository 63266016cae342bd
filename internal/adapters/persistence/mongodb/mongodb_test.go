package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"hr-selfservice/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to MONGODB_TEST_URI and drops the scratch database afterwards.
func openTestDB(t *testing.T) *MongoDB {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	db, err := Connect(uri, "hr_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}

func TestLeaveStore_Upsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	store, err := NewLeaveStore(ctx, db)
	require.NoError(t, err)

	first := &domain.LeaveRecord{Email: "a@example.com", Year: 2026, VacationDays: []string{"2026-01-05"}, TotalDays: 1, SubmittedAt: time.Now()}
	isUpdate, err := store.Upsert(ctx, first)
	require.NoError(t, err)
	assert.False(t, isUpdate)

	second := &domain.LeaveRecord{Email: "a@example.com", Year: 2026, VacationDays: []string{"2026-02-01", "2026-02-02"}, TotalDays: 2, SubmittedAt: time.Now()}
	isUpdate, err = store.Upsert(ctx, second)
	require.NoError(t, err)
	assert.True(t, isUpdate)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.TotalDays)

	records, err := store.List(ctx, domain.LeaveFilter{Year: 2026})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestServiceRequestStore_PendingWorkFromHome(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	store, err := NewServiceRequestStore(ctx, db)
	require.NoError(t, err)

	first := &domain.ServiceRequest{Email: "a@example.com", Dates: []string{"2026-01-05"}, SubmittedAt: time.Now()}
	isUpdate, err := store.UpsertPendingWorkFromHome(ctx, first)
	require.NoError(t, err)
	assert.False(t, isUpdate)
	assert.Equal(t, domain.StatusPending, first.Status)

	second := &domain.ServiceRequest{Email: "a@example.com", Dates: []string{"2026-01-06"}, SubmittedAt: time.Now()}
	isUpdate, err = store.UpsertPendingWorkFromHome(ctx, second)
	require.NoError(t, err)
	assert.True(t, isUpdate)
	assert.Equal(t, first.ID, second.ID)

	_, err = store.Resolve(ctx, first.ID, domain.StatusApproved, "", time.Now())
	require.NoError(t, err)
	_, err = store.Resolve(ctx, first.ID, domain.StatusRejected, "", time.Now())
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)

	third := &domain.ServiceRequest{Email: "a@example.com", Dates: []string{"2026-03-01"}, SubmittedAt: time.Now()}
	isUpdate, err = store.UpsertPendingWorkFromHome(ctx, third)
	require.NoError(t, err)
	assert.False(t, isUpdate)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestReminderLogStore_ClaimOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	store, err := NewReminderLogStore(ctx, db)
	require.NoError(t, err)

	ok, err := store.Claim(ctx, "a@example.com", "2026-01-11", 10, "2026-01-01")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, "a@example.com", "2026-01-11", 10, "2026-01-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSurveyStore_UniqueHRCodeAndUpdate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	store, err := NewSurveyStore(ctx, db)
	require.NoError(t, err)

	first := &domain.Survey{HRCode: "1002", Email: "a@example.com", Title: domain.TitleSenior, Department: domain.DepartmentDLMS,
		Skills: map[string]domain.SkillLevel{"DLMS": domain.SkillExpert}, SubmittedAt: time.Now()}
	require.NoError(t, store.Create(ctx, first))
	require.NotEmpty(t, first.ID)

	err = store.Create(ctx, &domain.Survey{HRCode: "1002", SubmittedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrConflict)

	edit := &domain.Survey{HRCode: "1002", Email: "a@example.com", ProjectName: "Gateway", SubmittedAt: time.Now()}
	require.NoError(t, store.Update(ctx, edit))
	assert.Equal(t, first.ID, edit.ID)
	assert.Equal(t, "Gateway", edit.ProjectName)
	assert.Empty(t, edit.Skills)

	assert.ErrorIs(t, store.Update(ctx, &domain.Survey{HRCode: "9999"}), domain.ErrSurveyNotFound)
}

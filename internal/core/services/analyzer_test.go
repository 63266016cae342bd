package services

import (
	"testing"

	"hr-selfservice/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(email string, days ...string) *domain.LeaveRecord {
	return &domain.LeaveRecord{Email: email, HRCode: email[:1], Year: 2026, VacationDays: days, TotalDays: len(days)}
}

func TestAnalyze_Empty(t *testing.T) {
	stats := Analyze(nil)

	assert.Zero(t, stats.TotalSubmissions)
	assert.Zero(t, stats.AverageDaysPerPerson)
	assert.NotNil(t, stats.TopEmployees)
	assert.NotNil(t, stats.OverlapDates)
	assert.Equal(t, [12]int{}, stats.MonthlyDistribution)
}

func TestAnalyze_TotalsAndAverage(t *testing.T) {
	stats := Analyze([]*domain.LeaveRecord{
		record("a@example.com", "2026-01-05", "2026-01-06"),
		record("b@example.com", "2026-01-05"),
		record("c@example.com", "2026-12-31", "2026-06-01", "2026-06-02", "2026-06-03"),
	})

	assert.Equal(t, 3, stats.TotalSubmissions)
	assert.Equal(t, 7, stats.TotalVacationDays)
	assert.Equal(t, 2.3, stats.AverageDaysPerPerson)

	assert.Equal(t, 3, stats.MonthlyDistribution[0])
	assert.Equal(t, 3, stats.MonthlyDistribution[5])
	assert.Equal(t, 1, stats.MonthlyDistribution[11])
}

func TestAnalyze_SharedDateIsOneOverlap(t *testing.T) {
	stats := Analyze([]*domain.LeaveRecord{
		record("a@example.com", "2026-05-01"),
		record("b@example.com", "2026-05-01"),
		record("c@example.com", "2026-05-01", "2026-05-02"),
	})

	require.Len(t, stats.OverlapDates, 1)
	overlap := stats.OverlapDates[0]
	assert.Equal(t, "2026-05-01", overlap.Date)
	assert.Equal(t, 3, overlap.TotalPeople)
	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, overlap.Employees)
}

func TestAnalyze_SameEmployeeInTwoYearsCountsOnce(t *testing.T) {
	a := record("a@example.com", "2026-05-01")
	again := record("a@example.com", "2026-05-01")
	again.Year = 2027

	stats := Analyze([]*domain.LeaveRecord{a, again})
	assert.Empty(t, stats.OverlapDates)
}

func TestAnalyze_RankingsAreStableAndCapped(t *testing.T) {
	var records []*domain.LeaveRecord
	for i := 0; i < 12; i++ {
		email := string(rune('a'+i)) + "@example.com"
		records = append(records, record(email, "2026-02-02"))
	}
	records = append(records, record("z@example.com", "2026-02-02", "2026-02-03"))

	stats := Analyze(records)

	require.Len(t, stats.TopEmployees, 10)
	assert.Equal(t, "z@example.com", stats.TopEmployees[0].Email)
	assert.Equal(t, 2, stats.TopEmployees[0].TotalDays)
	assert.Equal(t, "a@example.com", stats.TopEmployees[1].Email, "ties keep input order")
	assert.Equal(t, "i@example.com", stats.TopEmployees[9].Email)

	require.Len(t, stats.OverlapDates, 1)
	assert.Equal(t, 13, stats.OverlapDates[0].TotalPeople)
}

func TestAnalyze_OverlapsSortedByHeadcount(t *testing.T) {
	stats := Analyze([]*domain.LeaveRecord{
		record("a@example.com", "2026-04-01", "2026-04-02"),
		record("b@example.com", "2026-04-01", "2026-04-02"),
		record("c@example.com", "2026-04-02"),
	})

	require.Len(t, stats.OverlapDates, 2)
	assert.Equal(t, "2026-04-02", stats.OverlapDates[0].Date)
	assert.Equal(t, "2026-04-01", stats.OverlapDates[1].Date)
}

func TestRequestStats_ZeroFilled(t *testing.T) {
	stats := RequestStats([]*domain.ServiceRequest{
		{Type: domain.RequestWorkFromHome, Status: domain.StatusPending},
		{Type: domain.RequestWorkFromHome, Status: domain.StatusApproved},
		{Type: domain.RequestNeedHelp, Status: domain.StatusPending},
	})

	assert.Equal(t, 3, stats.TotalRequests)
	assert.Equal(t, map[domain.RequestType]int{
		domain.RequestWorkFromHome:   2,
		domain.RequestUrgentVacation: 0,
		domain.RequestNeedHelp:       1,
	}, stats.ByType)
	assert.Equal(t, 0, stats.ByStatus[domain.StatusRejected])
	assert.Equal(t, 2, stats.ByStatus[domain.StatusPending])
}

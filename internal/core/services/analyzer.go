package services

import (
	"sort"

	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/dateutil"

	"github.com/shopspring/decimal"
)

const (
	topEmployeesLimit = 10
	overlapDatesLimit = 20
)

// Analyze builds the utilization report for records. Ties in both rankings keep
// the order in which records (and their dates) were supplied.
func Analyze(records []*domain.LeaveRecord) domain.VacationStats {
	stats := domain.VacationStats{
		TotalSubmissions: len(records),
		TopEmployees:     []domain.EmployeeTotal{},
		OverlapDates:     []domain.DateOverlap{},
	}

	var dateOrder []string
	people := make(map[string][]string)
	seen := make(map[string]map[string]struct{})

	for _, r := range records {
		stats.TotalVacationDays += r.TotalDays

		for _, d := range r.VacationDays {
			if m, err := dateutil.Month(d); err == nil {
				stats.MonthlyDistribution[m]++
			}

			if _, ok := seen[d]; !ok {
				seen[d] = make(map[string]struct{})
				dateOrder = append(dateOrder, d)
			}
			if _, dup := seen[d][r.Email]; dup {
				continue
			}
			seen[d][r.Email] = struct{}{}
			people[d] = append(people[d], r.Email)
		}
	}

	if len(records) > 0 {
		avg := decimal.NewFromInt(int64(stats.TotalVacationDays)).
			Div(decimal.NewFromInt(int64(len(records)))).
			Round(1)
		stats.AverageDaysPerPerson = avg.InexactFloat64()
	}

	stats.TopEmployees = topEmployees(records)
	stats.OverlapDates = overlaps(dateOrder, people)
	return stats
}

func topEmployees(records []*domain.LeaveRecord) []domain.EmployeeTotal {
	ranked := make([]*domain.LeaveRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalDays > ranked[j].TotalDays
	})
	if len(ranked) > topEmployeesLimit {
		ranked = ranked[:topEmployeesLimit]
	}

	out := make([]domain.EmployeeTotal, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, domain.EmployeeTotal{Email: r.Email, HRCode: r.HRCode, TotalDays: r.TotalDays})
	}
	return out
}

func overlaps(dateOrder []string, people map[string][]string) []domain.DateOverlap {
	out := make([]domain.DateOverlap, 0)
	for _, d := range dateOrder {
		if len(people[d]) < 2 {
			continue
		}
		out = append(out, domain.DateOverlap{Date: d, TotalPeople: len(people[d]), Employees: people[d]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPeople > out[j].TotalPeople
	})
	if len(out) > overlapDatesLimit {
		out = out[:overlapDatesLimit]
	}
	return out
}

// RequestStats counts requests per type and status. Every known type and status
// is present in the result, zero when absent.
func RequestStats(requests []*domain.ServiceRequest) domain.ServiceRequestStats {
	stats := domain.ServiceRequestStats{
		TotalRequests: len(requests),
		ByType:        make(map[domain.RequestType]int, len(domain.RequestTypes)),
		ByStatus:      make(map[domain.RequestStatus]int, len(domain.RequestStatuses)),
	}
	for _, t := range domain.RequestTypes {
		stats.ByType[t] = 0
	}
	for _, s := range domain.RequestStatuses {
		stats.ByStatus[s] = 0
	}
	for _, r := range requests {
		stats.ByType[r.Type]++
		stats.ByStatus[r.Status]++
	}
	return stats
}

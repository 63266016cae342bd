package services

import (
	"sort"

	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/dateutil"
)

// ReminderMilestones are the day counts before a vacation day at which a reminder goes out
var ReminderMilestones = []int{30, 20, 10, 5, 3, 1}

// ReminderHorizon is the furthest milestone
const ReminderHorizon = 30

func isMilestone(days int) bool {
	for _, m := range ReminderMilestones {
		if m == days {
			return true
		}
	}
	return false
}

// CheckReminders finds the vacation days that sit exactly on a milestone from today and
// groups them per employee. Groups appear in record order; days in ascending daysAway.
// Each group is addressed to managerEmail with the department lead copied.
func CheckReminders(records []*domain.LeaveRecord, today string, gate *CredentialGate, managerEmail string) domain.ReminderBatch {
	batch := domain.ReminderBatch{Date: today, Groups: []domain.ReminderGroup{}}
	index := make(map[string]int)

	for _, r := range records {
		for _, d := range r.VacationDays {
			if d < today {
				continue
			}
			away, err := dateutil.DaysBetween(today, d)
			if err != nil || !isMilestone(away) {
				continue
			}

			i, ok := index[r.Email]
			if !ok {
				group := domain.ReminderGroup{
					Employee:   r.Email,
					Name:       r.FullName,
					Department: r.Department,
					To:         managerEmail,
				}
				if gate != nil {
					group.Cc = gate.LeadEmailFor(r.Email, r.Department)
					if group.Name == "" {
						if e, found := gate.Lookup(r.Email); found {
							group.Name = e.Name
						}
					}
				}
				batch.Groups = append(batch.Groups, group)
				i = len(batch.Groups) - 1
				index[r.Email] = i
			}
			batch.Groups[i].Days = append(batch.Groups[i].Days, domain.ReminderDay{Date: d, DaysAway: away})
		}
	}

	for i := range batch.Groups {
		days := batch.Groups[i].Days
		sort.SliceStable(days, func(a, b int) bool { return days[a].DaysAway < days[b].DaysAway })
	}
	return batch
}

package domain

// EmployeeTotal is one row of the top-employees table.
type EmployeeTotal struct {
	Email     string `json:"email"`
	HRCode    string `json:"hrCode"`
	TotalDays int    `json:"totalDays"`
}

// DateOverlap is a calendar day on which two or more employees are away.
type DateOverlap struct {
	Date        string   `json:"date"`
	TotalPeople int      `json:"totalPeople"`
	Employees   []string `json:"employees"`
}

// VacationStats is the team-wide utilization report.
type VacationStats struct {
	TotalSubmissions     int             `json:"totalSubmissions"`
	TotalVacationDays    int             `json:"totalVacationDays"`
	AverageDaysPerPerson float64         `json:"averageDaysPerPerson"`
	TopEmployees         []EmployeeTotal `json:"topEmployees"`
	MonthlyDistribution  [12]int         `json:"monthlyDistribution"`
	OverlapDates         []DateOverlap   `json:"overlapDates"`
}

// ServiceRequestStats counts requests per type and status.
type ServiceRequestStats struct {
	TotalRequests int                   `json:"totalRequests"`
	ByType        map[RequestType]int   `json:"byType"`
	ByStatus      map[RequestStatus]int `json:"byStatus"`
}

// ReminderDay is an upcoming vacation day that hit a milestone.
type ReminderDay struct {
	Date     string `json:"date"`
	DaysAway int    `json:"daysAway"`
}

// ReminderGroup collects the due reminders of one employee.
type ReminderGroup struct {
	Employee   string        `json:"employee"`
	Name       string        `json:"name,omitempty"`
	Department Department    `json:"department"`
	Days       []ReminderDay `json:"days"`
	To         string        `json:"-"`
	Cc         string        `json:"-"`
}

// ReminderBatch is the output of one reminder check.
type ReminderBatch struct {
	Date   string          `json:"date"`
	Groups []ReminderGroup `json:"reminders"`
}

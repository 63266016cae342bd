package domain

import "time"

// Department is an organizational unit on the employee roster.
type Department string

const (
	DepartmentDLMS          Department = "DLMS"
	DepartmentPrepaid       Department = "PREPAID"
	DepartmentFlow          Department = "FLOW"
	DepartmentCommunication Department = "COMMUNICATION"
	DepartmentTooling       Department = "TOOLING"
	DepartmentRnD           Department = "R&D"
)

// Valid reports whether d is a known department.
func (d Department) Valid() bool {
	switch d {
	case DepartmentDLMS, DepartmentPrepaid, DepartmentFlow,
		DepartmentCommunication, DepartmentTooling, DepartmentRnD:
		return true
	}
	return false
}

// Title is an employee's seniority on the roster.
type Title string

const (
	TitleJunior   Title = "Junior"
	TitleMid      Title = "Mid"
	TitleSenior   Title = "Senior"
	TitleTeamLead Title = "TeamLead"
)

// Employee is an immutable roster entry.
type Employee struct {
	HRCode     string     `json:"hrCode"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Department Department `json:"department"`
	Experience *int       `json:"experience"`
	Title      *Title     `json:"title"`
}

// IsLead reports whether the employee leads their department.
func (e *Employee) IsLead() bool {
	return e.Title != nil && *e.Title == TitleTeamLead
}

// LeaveRecord is an employee's annual vacation plan. One per (email, year).
type LeaveRecord struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	HRCode       string     `json:"hrCode"`
	Department   Department `json:"department"`
	Year         int        `json:"year"`
	VacationDays []string   `json:"vacationDays"`
	TotalDays    int        `json:"totalDays"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// LeaveFilter narrows leave record listings. Zero values match everything.
type LeaveFilter struct {
	Year  int
	Email string
}

// RequestType is the kind of ad hoc service request.
type RequestType string

const (
	RequestWorkFromHome   RequestType = "work_from_home"
	RequestUrgentVacation RequestType = "urgent_vacation"
	RequestNeedHelp       RequestType = "need_help"
)

// RequestTypes lists every request type in display order.
var RequestTypes = []RequestType{RequestWorkFromHome, RequestUrgentVacation, RequestNeedHelp}

// Valid reports whether t is a known request type.
func (t RequestType) Valid() bool {
	switch t {
	case RequestWorkFromHome, RequestUrgentVacation, RequestNeedHelp:
		return true
	}
	return false
}

// Label returns the human readable name used in notifications.
func (t RequestType) Label() string {
	switch t {
	case RequestWorkFromHome:
		return "Work From Home"
	case RequestUrgentVacation:
		return "Urgent Vacation"
	case RequestNeedHelp:
		return "Need Help"
	}
	return string(t)
}

// RequestStatus is the review state of a service request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// RequestStatuses lists every status in lifecycle order.
var RequestStatuses = []RequestStatus{StatusPending, StatusApproved, StatusRejected}

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ServiceRequest is an ad hoc request reviewed by HR.
type ServiceRequest struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	HRCode      string        `json:"hrCode"`
	Type        RequestType   `json:"type"`
	Dates       []string      `json:"dates"`
	Reason      string        `json:"reason"`
	Status      RequestStatus `json:"status"`
	AdminNote   string        `json:"adminNote"`
	SubmittedAt time.Time     `json:"submittedAt"`
	ResolvedAt  *time.Time    `json:"resolvedAt"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ServiceRequestFilter narrows service request listings. Zero values match everything.
type ServiceRequestFilter struct {
	Type   RequestType
	Status RequestStatus
	Email  string
}

// Admin is an HR staff account allowed to review requests.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

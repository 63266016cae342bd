package services

import (
	"strings"

	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/dateutil"
)

const (
	// UrgentVacationMaxDays is the most days one urgent vacation request may cover
	UrgentVacationMaxDays = 3
	// UrgentVacationWindowDays is how far ahead of today an urgent vacation may start
	UrgentVacationWindowDays = 3
)

// LeavePlanInput is an annual vacation plan submission
type LeavePlanInput struct {
	Email        string   `json:"email"`
	HRCode       string   `json:"hrCode"`
	Year         int      `json:"year"`
	VacationDays []string `json:"vacationDays"`
}

// ServiceRequestInput is an ad hoc request submission
type ServiceRequestInput struct {
	Email  string             `json:"email"`
	HRCode string             `json:"hrCode"`
	Type   domain.RequestType `json:"type"`
	Dates  []string           `json:"dates"`
	Reason string             `json:"reason"`
}

// RequestValidator applies the per-type business rules. It never reads the clock;
// every rule is evaluated against the today value passed in.
type RequestValidator struct{}

// NewRequestValidator creates a validator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// RequireLeaveFields checks the fields needed before credentials can be checked
func (v *RequestValidator) RequireLeaveFields(in LeavePlanInput) error {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.HRCode) == "" ||
		in.Year == 0 || len(in.VacationDays) == 0 {
		return domain.NewValidationError("", "Email, HR Code, Year and Vacation Days are required")
	}
	return nil
}

// LeavePlan validates an annual plan and returns its normalized day set
func (v *RequestValidator) LeavePlan(in LeavePlanInput, today string) ([]string, error) {
	if err := v.RequireLeaveFields(in); err != nil {
		return nil, err
	}

	days := dateutil.Normalize(in.VacationDays)
	if err := checkWellFormed("vacationDays", days); err != nil {
		return nil, err
	}

	var past []string
	for _, d := range days {
		if d < today {
			past = append(past, d)
		}
	}
	if len(past) > 0 {
		return nil, domain.NewValidationError("vacationDays", "Cannot select past dates: %s", strings.Join(past, ", "))
	}

	for _, d := range days {
		if year, _ := dateutil.Year(d); year != in.Year {
			return nil, domain.NewValidationError("vacationDays", "Date %s is not in %d", d, in.Year)
		}
	}
	return days, nil
}

// AdminLeaveDays validates a day set edited by an admin. Past dates are allowed.
func (v *RequestValidator) AdminLeaveDays(days []string, year int) ([]string, error) {
	if len(days) == 0 {
		return nil, domain.NewValidationError("vacationDays", "Please select at least one vacation day")
	}
	out := dateutil.Normalize(days)
	if err := checkWellFormed("vacationDays", out); err != nil {
		return nil, err
	}
	for _, d := range out {
		if y, _ := dateutil.Year(d); y != year {
			return nil, domain.NewValidationError("vacationDays", "Date %s is not in %d", d, year)
		}
	}
	return out, nil
}

// RequireServiceFields checks the fields needed before credentials can be checked
func (v *RequestValidator) RequireServiceFields(in ServiceRequestInput) error {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.HRCode) == "" || in.Type == "" {
		return domain.NewValidationError("", "Email, HR Code, and Request Type are required")
	}
	if !in.Type.Valid() {
		return domain.NewValidationError("type", "Unknown request type: %s", in.Type)
	}
	return nil
}

// ServiceRequest validates a request and returns its normalized dates and trimmed reason
func (v *RequestValidator) ServiceRequest(in ServiceRequestInput, today string) ([]string, string, error) {
	if err := v.RequireServiceFields(in); err != nil {
		return nil, "", err
	}

	reason := strings.TrimSpace(in.Reason)

	switch in.Type {
	case domain.RequestWorkFromHome:
		dates, err := requireDates(in.Dates, in.Type)
		if err != nil {
			return nil, "", err
		}
		return dates, reason, nil

	case domain.RequestUrgentVacation:
		dates, err := requireDates(in.Dates, in.Type)
		if err != nil {
			return nil, "", err
		}
		if len(dates) > UrgentVacationMaxDays {
			return nil, "", domain.NewValidationError("dates", "Urgent Vacation cannot exceed %d days", UrgentVacationMaxDays)
		}
		limit, err := dateutil.AddDays(today, UrgentVacationWindowDays)
		if err != nil {
			return nil, "", err
		}
		for _, d := range dates {
			if d < today {
				return nil, "", domain.NewValidationError("dates", "Cannot select past date: %s", d)
			}
			if d > limit {
				return nil, "", domain.NewValidationError("dates",
					"Urgent vacation dates must be within %d days from today. %s is too far.", UrgentVacationWindowDays, d)
			}
		}
		return dates, reason, nil

	case domain.RequestNeedHelp:
		if reason == "" {
			return nil, "", domain.NewValidationError("reason", "Please describe what help you need")
		}
		// help requests carry no dates
		return []string{}, reason, nil
	}

	return nil, "", domain.NewValidationError("type", "Unknown request type: %s", in.Type)
}

func requireDates(dates []string, t domain.RequestType) ([]string, error) {
	out := dateutil.Normalize(dates)
	if len(out) == 0 {
		return nil, domain.NewValidationError("dates", "Please select at least one date for %s", t.Label())
	}
	if err := checkWellFormed("dates", out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkWellFormed(field string, days []string) error {
	for _, d := range days {
		if !dateutil.Valid(d) {
			return domain.NewValidationError(field, "Invalid date: %q (expected YYYY-MM-DD)", d)
		}
	}
	return nil
}

// SurveyInput is a skills survey submission or edit
type SurveyInput struct {
	Email              string                       `json:"email"`
	HRCode             string                       `json:"hrCode"`
	FullName           string                       `json:"fullName"`
	Title              domain.Title                 `json:"title"`
	Experience         *int                         `json:"experience"`
	ProjectName        string                       `json:"projectName"`
	CurrentModules     []string                     `json:"currentModules"`
	OtherCurrentModule string                       `json:"otherCurrentModule"`
	TaskDescription    string                       `json:"taskDescription"`
	DeliveryDate       string                       `json:"deliveryDate"`
	Skills             map[string]domain.SkillLevel `json:"skills"`
	CustomSkills       map[string]domain.SkillLevel `json:"customSkills"`
	GainingExperience  domain.Answer                `json:"gainingExperience"`
	WillingToChange    domain.Answer                `json:"willingToChange"`
	Challenges         string                       `json:"challenges"`
	TrainingNeeds      string                       `json:"trainingNeeds"`
	ToolsNeeded        string                       `json:"toolsNeeded"`
	CareerGoals        string                       `json:"careerGoals"`
	Suggestions        string                       `json:"suggestions"`
}

// RequireSurveyFields checks the fields needed before credentials can be checked
func (v *RequestValidator) RequireSurveyFields(in SurveyInput) error {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.HRCode) == "" {
		return domain.NewValidationError("", "Email and HR Code are required")
	}
	return nil
}

// Survey validates a survey for emp and returns it ready to store.
// Name, title and experience fall back to the roster entry when omitted.
func (v *RequestValidator) Survey(in SurveyInput, emp *domain.Employee) (*domain.Survey, error) {
	s := &domain.Survey{
		HRCode:             emp.HRCode,
		Email:              emp.Email,
		FullName:           strings.TrimSpace(in.FullName),
		Title:              in.Title,
		Department:         emp.Department,
		ProjectName:        strings.TrimSpace(in.ProjectName),
		CurrentModules:     cleanList(in.CurrentModules),
		OtherCurrentModule: strings.TrimSpace(in.OtherCurrentModule),
		TaskDescription:    strings.TrimSpace(in.TaskDescription),
		DeliveryDate:       strings.TrimSpace(in.DeliveryDate),
		GainingExperience:  in.GainingExperience,
		WillingToChange:    in.WillingToChange,
		Challenges:         strings.TrimSpace(in.Challenges),
		TrainingNeeds:      strings.TrimSpace(in.TrainingNeeds),
		ToolsNeeded:        strings.TrimSpace(in.ToolsNeeded),
		CareerGoals:        strings.TrimSpace(in.CareerGoals),
		Suggestions:        strings.TrimSpace(in.Suggestions),
	}

	if s.FullName == "" {
		s.FullName = emp.Name
	}
	if s.Title == "" && emp.Title != nil {
		s.Title = *emp.Title
	}
	switch {
	case in.Experience != nil:
		s.Experience = *in.Experience
	case emp.Experience != nil:
		s.Experience = *emp.Experience
	default:
		return nil, domain.NewValidationError("experience", "Years of experience is required")
	}

	if s.FullName == "" || s.ProjectName == "" {
		return nil, domain.NewValidationError("", "Full name and project name are required")
	}
	if !domain.SurveyTitle(s.Title) {
		return nil, domain.NewValidationError("title", "Invalid title: %s", s.Title)
	}
	if s.Experience < 0 || s.Experience > domain.MaxSurveyExperience {
		return nil, domain.NewValidationError("experience", "Experience must be between 0 and %d years", domain.MaxSurveyExperience)
	}
	if s.DeliveryDate != "" && !dateutil.Valid(s.DeliveryDate) {
		return nil, domain.NewValidationError("deliveryDate", "Invalid date: %s", s.DeliveryDate)
	}
	if !s.GainingExperience.Valid() || !s.WillingToChange.Valid() {
		return nil, domain.NewValidationError("", "Answers must be yes or no")
	}

	var err error
	if s.Skills, err = cleanSkills("skills", in.Skills); err != nil {
		return nil, err
	}
	if s.CustomSkills, err = cleanSkills("customSkills", in.CustomSkills); err != nil {
		return nil, err
	}
	if len(s.CustomSkills) > domain.MaxCustomSkills {
		return nil, domain.NewValidationError("customSkills", "You can add at most %d custom skills", domain.MaxCustomSkills)
	}
	return s, nil
}

// cleanSkills trims skill names and checks every level
func cleanSkills(field string, in map[string]domain.SkillLevel) (map[string]domain.SkillLevel, error) {
	out := make(map[string]domain.SkillLevel, len(in))
	for name, level := range in {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, domain.NewValidationError(field, "Skill name cannot be empty")
		}
		if !level.Valid() {
			return nil, domain.NewValidationError(field, "Invalid level %q for %s", level, name)
		}
		out[name] = level
	}
	return out, nil
}

// cleanList trims entries and drops blanks and repeats, keeping order
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

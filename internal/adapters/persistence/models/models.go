package models

import (
	"time"

	"hr-selfservice/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Admin accounts
// ============================================================

// Admin represents admins table
type Admin struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Username     string    `gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) ToDomain() *domain.Admin {
	return &domain.Admin{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
}

// ============================================================
// Annual vacation plans
// ============================================================

// LeaveRecord represents leave_records table
type LeaveRecord struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex:idx_leave_email_year;size:191;not null"`
	Year         int       `gorm:"uniqueIndex:idx_leave_email_year;not null;index"`
	FullName     string    `gorm:"size:120"`
	HRCode       string    `gorm:"size:20;not null"`
	Department   string    `gorm:"size:30;index"`
	VacationDays []string  `gorm:"serializer:json;type:text;not null"`
	TotalDays    int       `gorm:"not null;default:0"`
	SubmittedAt  time.Time `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (LeaveRecord) TableName() string {
	return "leave_records"
}

func (r *LeaveRecord) ToDomain() *domain.LeaveRecord {
	days := r.VacationDays
	if days == nil {
		days = []string{}
	}
	return &domain.LeaveRecord{
		ID:           r.ID,
		Email:        r.Email,
		FullName:     r.FullName,
		HRCode:       r.HRCode,
		Department:   domain.Department(r.Department),
		Year:         r.Year,
		VacationDays: days,
		TotalDays:    r.TotalDays,
		SubmittedAt:  r.SubmittedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// LeaveRecordFromDomain converts a domain record into its row
func LeaveRecordFromDomain(r *domain.LeaveRecord) *LeaveRecord {
	return &LeaveRecord{
		ID:           r.ID,
		Email:        r.Email,
		Year:         r.Year,
		FullName:     r.FullName,
		HRCode:       r.HRCode,
		Department:   string(r.Department),
		VacationDays: r.VacationDays,
		TotalDays:    r.TotalDays,
		SubmittedAt:  r.SubmittedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ============================================================
// Service requests
// ============================================================

// ServiceRequest represents service_requests table.
// PendingKey is set only while a work_from_home request is pending;
// its unique index allows at most one such request per email.
type ServiceRequest struct {
	ID          string     `gorm:"primaryKey;size:36"`
	Email       string     `gorm:"size:191;not null;index"`
	HRCode      string     `gorm:"size:20;not null"`
	Type        string     `gorm:"size:30;not null;index"`
	Dates       []string   `gorm:"serializer:json;type:text"`
	Reason      string     `gorm:"type:text"`
	Status      string     `gorm:"size:20;not null;default:'pending';index"`
	AdminNote   string     `gorm:"type:text"`
	PendingKey  *string    `gorm:"size:191;uniqueIndex"`
	SubmittedAt time.Time  `gorm:"not null;index"`
	ResolvedAt  *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}

// PendingWorkFromHomeKey is the PendingKey value of an email's open work_from_home request
func PendingWorkFromHomeKey(email string) string {
	return email + "#" + string(domain.RequestWorkFromHome)
}

func (s *ServiceRequest) ToDomain() *domain.ServiceRequest {
	dates := s.Dates
	if dates == nil {
		dates = []string{}
	}
	return &domain.ServiceRequest{
		ID:          s.ID,
		Email:       s.Email,
		HRCode:      s.HRCode,
		Type:        domain.RequestType(s.Type),
		Dates:       dates,
		Reason:      s.Reason,
		Status:      domain.RequestStatus(s.Status),
		AdminNote:   s.AdminNote,
		SubmittedAt: s.SubmittedAt,
		ResolvedAt:  s.ResolvedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ServiceRequestFromDomain converts a domain request into its row
func ServiceRequestFromDomain(s *domain.ServiceRequest) *ServiceRequest {
	row := &ServiceRequest{
		ID:          s.ID,
		Email:       s.Email,
		HRCode:      s.HRCode,
		Type:        string(s.Type),
		Dates:       s.Dates,
		Reason:      s.Reason,
		Status:      string(s.Status),
		AdminNote:   s.AdminNote,
		SubmittedAt: s.SubmittedAt,
		ResolvedAt:  s.ResolvedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Type == domain.RequestWorkFromHome && s.Status == domain.StatusPending {
		key := PendingWorkFromHomeKey(s.Email)
		row.PendingKey = &key
	}
	return row
}

// ============================================================
// Reminder log
// ============================================================

// ReminderLog represents reminder_logs table. One row per reminder sent.
type ReminderLog struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex:idx_reminder_once;size:191;not null"`
	Date      string    `gorm:"uniqueIndex:idx_reminder_once;size:10;not null"`
	Milestone int       `gorm:"uniqueIndex:idx_reminder_once;not null"`
	SentOn    string    `gorm:"size:10;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ReminderLog) TableName() string {
	return "reminder_logs"
}

// ============================================================
// Skills surveys
// ============================================================

// Survey represents surveys table
type Survey struct {
	ID                 string            `gorm:"primaryKey;size:36"`
	HRCode             string            `gorm:"uniqueIndex;size:20;not null"`
	Email              string            `gorm:"size:191;not null"`
	FullName           string            `gorm:"size:120;not null"`
	Title              string            `gorm:"size:20;not null"`
	Experience         int               `gorm:"not null;default:0"`
	Department         string            `gorm:"size:30;not null;index"`
	ProjectName        string            `gorm:"size:191;not null"`
	CurrentModules     []string          `gorm:"serializer:json;type:text"`
	OtherCurrentModule string            `gorm:"size:191"`
	TaskDescription    string            `gorm:"type:text"`
	DeliveryDate       string            `gorm:"size:10"`
	Skills             map[string]string `gorm:"serializer:json;type:text"`
	CustomSkills       map[string]string `gorm:"serializer:json;type:text"`
	GainingExperience  string            `gorm:"size:3"`
	WillingToChange    string            `gorm:"size:3"`
	Challenges         string            `gorm:"type:text"`
	TrainingNeeds      string            `gorm:"type:text"`
	ToolsNeeded        string            `gorm:"type:text"`
	CareerGoals        string            `gorm:"type:text"`
	Suggestions        string            `gorm:"type:text"`
	SubmittedAt        time.Time         `gorm:"not null;index"`
	CreatedAt          time.Time         `gorm:"autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime"`
}

func (Survey) TableName() string {
	return "surveys"
}

func (s *Survey) ToDomain() *domain.Survey {
	modules := s.CurrentModules
	if modules == nil {
		modules = []string{}
	}
	return &domain.Survey{
		ID:                 s.ID,
		HRCode:             s.HRCode,
		Email:              s.Email,
		FullName:           s.FullName,
		Title:              domain.Title(s.Title),
		Experience:         s.Experience,
		Department:         domain.Department(s.Department),
		ProjectName:        s.ProjectName,
		CurrentModules:     modules,
		OtherCurrentModule: s.OtherCurrentModule,
		TaskDescription:    s.TaskDescription,
		DeliveryDate:       s.DeliveryDate,
		Skills:             SkillsToDomain(s.Skills),
		CustomSkills:       SkillsToDomain(s.CustomSkills),
		GainingExperience:  domain.Answer(s.GainingExperience),
		WillingToChange:    domain.Answer(s.WillingToChange),
		Challenges:         s.Challenges,
		TrainingNeeds:      s.TrainingNeeds,
		ToolsNeeded:        s.ToolsNeeded,
		CareerGoals:        s.CareerGoals,
		Suggestions:        s.Suggestions,
		SubmittedAt:        s.SubmittedAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// SurveyFromDomain converts a domain survey into its row
func SurveyFromDomain(s *domain.Survey) *Survey {
	return &Survey{
		ID:                 s.ID,
		HRCode:             s.HRCode,
		Email:              s.Email,
		FullName:           s.FullName,
		Title:              string(s.Title),
		Experience:         s.Experience,
		Department:         string(s.Department),
		ProjectName:        s.ProjectName,
		CurrentModules:     s.CurrentModules,
		OtherCurrentModule: s.OtherCurrentModule,
		TaskDescription:    s.TaskDescription,
		DeliveryDate:       s.DeliveryDate,
		Skills:             SkillsFromDomain(s.Skills),
		CustomSkills:       SkillsFromDomain(s.CustomSkills),
		GainingExperience:  string(s.GainingExperience),
		WillingToChange:    string(s.WillingToChange),
		Challenges:         s.Challenges,
		TrainingNeeds:      s.TrainingNeeds,
		ToolsNeeded:        s.ToolsNeeded,
		CareerGoals:        s.CareerGoals,
		Suggestions:        s.Suggestions,
		SubmittedAt:        s.SubmittedAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// SkillsToDomain converts a stored skill map. nil becomes an empty map.
func SkillsToDomain(in map[string]string) map[string]domain.SkillLevel {
	out := make(map[string]domain.SkillLevel, len(in))
	for k, v := range in {
		out[k] = domain.SkillLevel(v)
	}
	return out
}

// SkillsFromDomain converts a skill map for storage
func SkillsFromDomain(in map[string]domain.SkillLevel) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = string(v)
	}
	return out
}

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Admin{},
		&LeaveRecord{},
		&ServiceRequest{},
		&ReminderLog{},
		&Survey{},
	)
}

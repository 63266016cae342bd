package domain

import "time"

// MaxCustomSkills caps the user-added entries of a survey
const MaxCustomSkills = 10

// MaxSurveyExperience is the highest accepted years-of-experience answer
const MaxSurveyExperience = 40

// TitleManager is only reported on surveys; the roster has no managers.
const TitleManager Title = "Manager"

// SurveyTitle reports whether t may be given on a skills survey.
func SurveyTitle(t Title) bool {
	switch t {
	case TitleJunior, TitleMid, TitleSenior, TitleTeamLead, TitleManager:
		return true
	}
	return false
}

// SkillLevel is a self-assessed proficiency.
type SkillLevel string

const (
	SkillNone       SkillLevel = "none"
	SkillLearning   SkillLevel = "learning"
	SkillBasic      SkillLevel = "basic"
	SkillProficient SkillLevel = "proficient"
	SkillExpert     SkillLevel = "expert"
)

// Valid reports whether l is a known level.
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillNone, SkillLearning, SkillBasic, SkillProficient, SkillExpert:
		return true
	}
	return false
}

// Answer is an optional yes/no survey answer. Empty means unanswered.
type Answer string

const (
	AnswerYes  Answer = "yes"
	AnswerNo   Answer = "no"
	AnswerNone Answer = ""
)

// Valid reports whether a is yes, no or unanswered.
func (a Answer) Valid() bool {
	return a == AnswerYes || a == AnswerNo || a == AnswerNone
}

// Survey is an employee's skills and career survey. One per HR code.
type Survey struct {
	ID         string     `json:"id"`
	HRCode     string     `json:"hrCode"`
	Email      string     `json:"email"`
	FullName   string     `json:"fullName"`
	Title      Title      `json:"title"`
	Experience int        `json:"experience"`
	Department Department `json:"department"`
	// Current work
	ProjectName        string   `json:"projectName"`
	CurrentModules     []string `json:"currentModules"`
	OtherCurrentModule string   `json:"otherCurrentModule"`
	TaskDescription    string   `json:"taskDescription"`
	DeliveryDate       string   `json:"deliveryDate"`
	// Skill name to level
	Skills       map[string]SkillLevel `json:"skills"`
	CustomSkills map[string]SkillLevel `json:"customSkills"`
	// Feedback
	GainingExperience Answer    `json:"gainingExperience"`
	WillingToChange   Answer    `json:"willingToChange"`
	Challenges        string    `json:"challenges"`
	TrainingNeeds     string    `json:"trainingNeeds"`
	ToolsNeeded       string    `json:"toolsNeeded"`
	CareerGoals       string    `json:"careerGoals"`
	Suggestions       string    `json:"suggestions"`
	SubmittedAt       time.Time `json:"submittedAt"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// SurveyFilter narrows survey listings. Zero values match everything.
type SurveyFilter struct {
	Department Department
}

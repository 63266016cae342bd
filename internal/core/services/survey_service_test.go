package services

import (
	"context"
	"fmt"
	"testing"

	"hr-selfservice/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surveyFor(email, hrCode string) SurveyInput {
	return SurveyInput{
		Email:       email,
		HRCode:      hrCode,
		ProjectName: " Smart Meter ",
		Skills:      map[string]domain.SkillLevel{"DLMS": domain.SkillExpert, "AES": domain.SkillLearning},
	}
}

func TestSurveyService_SubmitFillsFromRoster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := surveyFor("Alex@Example.com", "1002")
	in.CurrentModules = []string{"Metering", " ", "Metering", "Tariff"}
	in.GainingExperience = domain.AnswerYes

	survey, err := env.svc.Surveys.Submit(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, survey.ID)
	assert.Equal(t, "alex@example.com", survey.Email)
	assert.Equal(t, "Alex Doe", survey.FullName)
	assert.Equal(t, domain.TitleMid, survey.Title)
	assert.Equal(t, 3, survey.Experience)
	assert.Equal(t, domain.DepartmentDLMS, survey.Department)
	assert.Equal(t, "Smart Meter", survey.ProjectName)
	assert.Equal(t, []string{"Metering", "Tariff"}, survey.CurrentModules)

	mails := env.mailer.bySubject("New Skills Survey")
	require.Len(t, mails, 1)
	assert.Equal(t, []string{"alex@example.com"}, mails[0].To)
	assert.Equal(t, []string{"lead.dlms@example.com"}, mails[0].Cc)

	admin := env.mailer.bySubject("New Survey Submission - Alex Doe")
	require.Len(t, admin, 1)
	assert.Equal(t, []string{testAdmin}, admin[0].To)
	assert.Contains(t, admin[0].HTML, "Smart Meter")
}

func TestSurveyService_DuplicateHRCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Surveys.Submit(ctx, surveyFor("alex@example.com", "1002"))
	require.NoError(t, err)

	_, err = env.svc.Surveys.Submit(ctx, surveyFor("alex@example.com", "1002"))
	assert.ErrorIs(t, err, domain.ErrSurveyExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSurveyService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tooMany := make(map[string]domain.SkillLevel, domain.MaxCustomSkills+1)
	for i := 0; i <= domain.MaxCustomSkills; i++ {
		tooMany[fmt.Sprintf("Skill%d", i)] = domain.SkillBasic
	}

	tests := []struct {
		name   string
		modify func(in *SurveyInput)
		want   string
	}{
		{"missing credentials", func(in *SurveyInput) { in.HRCode = "" }, "Email and HR Code are required"},
		{"missing project", func(in *SurveyInput) { in.ProjectName = "  " }, "Full name and project name are required"},
		{"bad title", func(in *SurveyInput) { in.Title = "Intern" }, "Invalid title: Intern"},
		{"experience too high", func(in *SurveyInput) { in.Experience = ptr(41) }, "Experience must be between 0 and 40 years"},
		{"bad level", func(in *SurveyInput) { in.Skills = map[string]domain.SkillLevel{"RTOS": "guru"} }, `Invalid level "guru" for RTOS`},
		{"bad answer", func(in *SurveyInput) { in.WillingToChange = "maybe" }, "Answers must be yes or no"},
		{"bad delivery date", func(in *SurveyInput) { in.DeliveryDate = "2026-02-30" }, "Invalid date: 2026-02-30"},
		{"too many custom skills", func(in *SurveyInput) { in.CustomSkills = tooMany }, "You can add at most 10 custom skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := surveyFor("alex@example.com", "1002")
			tt.modify(&in)
			_, err := env.svc.Surveys.Submit(ctx, in)
			assert.Equal(t, tt.want, validationMessage(t, err))
		})
	}

	t.Run("experience required when roster has none", func(t *testing.T) {
		in := surveyFor("sam@example.com", "1003")
		in.Title = domain.TitleJunior
		_, err := env.svc.Surveys.Submit(ctx, in)
		assert.Equal(t, "Years of experience is required", validationMessage(t, err))
	})

	t.Run("ten custom skills accepted", func(t *testing.T) {
		in := surveyFor("kim@example.com", "4001")
		in.Title = domain.TitleManager
		in.Experience = ptr(12)
		delete(tooMany, "Skill0")
		in.CustomSkills = tooMany
		survey, err := env.svc.Surveys.Submit(ctx, in)
		require.NoError(t, err)
		assert.Len(t, survey.CustomSkills, domain.MaxCustomSkills)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		_, err := env.svc.Surveys.Submit(ctx, surveyFor("alex@example.com", "1003"))
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})
}

func TestSurveyService_UpdateByHRCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Surveys.Submit(ctx, surveyFor("alex@example.com", "1002"))
	require.NoError(t, err)

	edit := surveyFor("alex@example.com", "")
	edit.ProjectName = "Prepaid Gateway"
	edit.Skills = map[string]domain.SkillLevel{"RTOS": domain.SkillProficient}
	updated, err := env.svc.Surveys.UpdateByHRCode(ctx, "1002", edit)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "Prepaid Gateway", updated.ProjectName)
	assert.Equal(t, map[string]domain.SkillLevel{"RTOS": domain.SkillProficient}, updated.Skills)
	assert.Len(t, env.mailer.bySubject("Updated Skills Survey"), 1)

	_, err = env.svc.Surveys.UpdateByHRCode(ctx, "1002", surveyFor("sam@example.com", "1003"))
	assert.Equal(t, "HR Code does not match the survey being updated", validationMessage(t, err))

	in := surveyFor("kim@example.com", "4001")
	in.Experience = ptr(2)
	in.Title = domain.TitleJunior
	_, err = env.svc.Surveys.UpdateByHRCode(ctx, "4001", in)
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)
}

func TestSurveyService_ListDeleteAndClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alex, err := env.svc.Surveys.Submit(ctx, surveyFor("alex@example.com", "1002"))
	require.NoError(t, err)
	kim := surveyFor("kim@example.com", "4001")
	kim.Experience = ptr(6)
	kim.Title = domain.TitleSenior
	_, err = env.svc.Surveys.Submit(ctx, kim)
	require.NoError(t, err)

	all, err := env.svc.Surveys.List(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	tooling, err := env.svc.Surveys.List(ctx, string(domain.DepartmentTooling))
	require.NoError(t, err)
	require.Len(t, tooling, 1)
	assert.Equal(t, "4001", tooling[0].HRCode)

	_, err = env.svc.Surveys.List(ctx, "SALES")
	assert.Equal(t, "Unknown department: SALES", validationMessage(t, err))

	got, err := env.svc.Surveys.Get(ctx, alex.ID)
	require.NoError(t, err)
	assert.Equal(t, "1002", got.HRCode)

	require.NoError(t, env.svc.Surveys.Delete(ctx, alex.ID))
	assert.ErrorIs(t, env.svc.Surveys.Delete(ctx, alex.ID), domain.ErrSurveyNotFound)

	n, err := env.svc.Surveys.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSurveyService_SendEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.svc.Surveys.SendEmail(ctx, SendEmailInput{To: "alex@example.com", Subject: "Training plan"})
	assert.Equal(t, "to, subject, and html are required", validationMessage(t, err))

	require.NoError(t, env.svc.Surveys.SendEmail(ctx, SendEmailInput{To: " alex@example.com ", Subject: "Training plan", HTML: "<p>Hi</p>"}))
	mails := env.mailer.bySubject("Training plan")
	require.Len(t, mails, 1)
	assert.Equal(t, []string{"alex@example.com"}, mails[0].To)
	assert.Equal(t, "<p>Hi</p>", mails[0].HTML)

	env.mailer.failFor["alex@example.com"] = true
	err = env.svc.Surveys.SendEmail(ctx, SendEmailInput{To: "alex@example.com", Subject: "Again", HTML: "<p>Hi</p>"})
	var derr *domain.DeliveryError
	assert.ErrorAs(t, err, &derr)
}

package handlers

import (
	"strings"

	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/core/services"
	"hr-selfservice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SurveyHandler handles skills survey endpoints
type SurveyHandler struct {
	surveyService *services.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveyService *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// Submit handles a first survey submission
// @Summary Submit skills survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param body body services.SurveyInput true "Survey"
// @Success 201 {object} domain.Survey
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /surveys [post]
func (h *SurveyHandler) Submit(c *fiber.Ctx) error {
	var req services.SurveyInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	survey, err := h.surveyService.Submit(c.UserContext(), req)
	if err != nil {
		return handleError(c, err, "Failed to save survey")
	}
	return response.Created(c, survey)
}

// Update handles an employee editing their survey
// @Summary Update skills survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param hrCode path string true "HR code"
// @Param body body services.SurveyInput true "Survey"
// @Success 200 {object} domain.Survey
// @Failure 404 {object} response.ErrorBody
// @Router /surveys/{hrCode} [put]
func (h *SurveyHandler) Update(c *fiber.Ctx) error {
	var req services.SurveyInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	survey, err := h.surveyService.UpdateByHRCode(c.UserContext(), c.Params("hrCode"), req)
	if err != nil {
		return handleError(c, err, "Failed to update survey")
	}
	return response.OK(c, survey)
}

// List handles listing surveys
// @Summary List skills surveys
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department, or all"
// @Success 200 {array} domain.Survey
// @Router /surveys [get]
func (h *SurveyHandler) List(c *fiber.Ctx) error {
	surveys, err := h.surveyService.List(c.UserContext(), c.Query("department"))
	if err != nil {
		return handleError(c, err, "Failed to list surveys")
	}
	if surveys == nil {
		surveys = []*domain.Survey{}
	}
	return response.OK(c, surveys)
}

// Get handles fetching one survey
func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	survey, err := h.surveyService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get survey")
	}
	return response.OK(c, survey)
}

// Delete handles removing one survey
func (h *SurveyHandler) Delete(c *fiber.Ctx) error {
	if err := h.surveyService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err, "Failed to delete survey")
	}
	return response.OK(c, fiber.Map{"success": true})
}

// DeleteAll handles clearing every survey
func (h *SurveyHandler) DeleteAll(c *fiber.Ctx) error {
	n, err := h.surveyService.DeleteAll(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to clear surveys")
	}
	return response.OK(c, fiber.Map{"success": true, "deleted": n})
}

// SendEmail handles a personalized email from HR
// @Summary Send personalized email
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SendEmailInput true "Message"
// @Success 200 {object} map[string]interface{}
// @Router /surveys/send-email [post]
func (h *SurveyHandler) SendEmail(c *fiber.Ctx) error {
	var req services.SendEmailInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.surveyService.SendEmail(c.UserContext(), req); err != nil {
		return handleError(c, err, "Failed to send email")
	}
	return response.OK(c, fiber.Map{"success": true, "to": strings.TrimSpace(req.To)})
}

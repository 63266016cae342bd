package handlers

import (
	"strconv"

	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/core/services"
	"hr-selfservice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VacationHandler handles annual vacation plan endpoints
type VacationHandler struct {
	vacationService *services.VacationService
	reminderService *services.ReminderService
}

// NewVacationHandler creates a new vacation handler
func NewVacationHandler(vacationService *services.VacationService, reminderService *services.ReminderService) *VacationHandler {
	return &VacationHandler{
		vacationService: vacationService,
		reminderService: reminderService,
	}
}

// UpdateDaysRequest is an admin correction of a plan's days
type UpdateDaysRequest struct {
	VacationDays []string `json:"vacationDays"`
}

// Submit handles an annual plan submission
// @Summary Submit vacation plan
// @Description Create or replace the caller's plan for a year
// @Tags Vacations
// @Accept json
// @Produce json
// @Param body body services.LeavePlanInput true "Vacation plan"
// @Success 201 {object} services.SubmitResult
// @Success 200 {object} services.SubmitResult
// @Failure 400 {object} response.ErrorBody
// @Router /vacations [post]
func (h *VacationHandler) Submit(c *fiber.Ctx) error {
	var req services.LeavePlanInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.vacationService.Submit(c.UserContext(), req)
	if err != nil {
		return handleError(c, err, "Failed to save vacation plan")
	}

	if result.IsUpdate {
		return response.OK(c, result)
	}
	return response.Created(c, result)
}

// List handles listing plans
// @Summary List vacation plans
// @Tags Vacations
// @Produce json
// @Param year query int false "Year"
// @Param email query string false "Employee email"
// @Success 200 {array} domain.LeaveRecord
// @Router /vacations [get]
func (h *VacationHandler) List(c *fiber.Ctx) error {
	year, err := queryYear(c)
	if err != nil {
		return response.BadRequest(c, "Invalid year")
	}

	records, err := h.vacationService.List(c.UserContext(), domain.LeaveFilter{
		Year:  year,
		Email: c.Query("email"),
	})
	if err != nil {
		return handleError(c, err, "Failed to list vacation plans")
	}
	if records == nil {
		records = []*domain.LeaveRecord{}
	}
	return response.OK(c, records)
}

// Get handles fetching one plan
func (h *VacationHandler) Get(c *fiber.Ctx) error {
	rec, err := h.vacationService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get vacation plan")
	}
	return response.OK(c, rec)
}

// Update handles an admin edit of a plan's days
// @Summary Edit vacation plan days
// @Tags Vacations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param body body UpdateDaysRequest true "Days"
// @Success 200 {object} domain.LeaveRecord
// @Router /vacations/{id} [put]
func (h *VacationHandler) Update(c *fiber.Ctx) error {
	var req UpdateDaysRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rec, err := h.vacationService.UpdateDays(c.UserContext(), c.Params("id"), req.VacationDays)
	if err != nil {
		return handleError(c, err, "Failed to update vacation plan")
	}
	return response.OK(c, rec)
}

// Delete handles removing one plan
func (h *VacationHandler) Delete(c *fiber.Ctx) error {
	if err := h.vacationService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err, "Failed to delete vacation plan")
	}
	return response.Success(c, "Vacation record deleted")
}

// DeleteAll handles clearing every plan
func (h *VacationHandler) DeleteAll(c *fiber.Ctx) error {
	n, err := h.vacationService.DeleteAll(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to clear vacation plans")
	}
	return response.OK(c, fiber.Map{
		"message": "All vacation records deleted",
		"deleted": n,
	})
}

// Stats handles the utilization report
// @Summary Vacation statistics
// @Tags Vacations
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Success 200 {object} domain.VacationStats
// @Router /vacations/stats [get]
func (h *VacationHandler) Stats(c *fiber.Ctx) error {
	year, err := queryYear(c)
	if err != nil {
		return response.BadRequest(c, "Invalid year")
	}

	stats, err := h.vacationService.Stats(c.UserContext(), year)
	if err != nil {
		return handleError(c, err, "Failed to build vacation statistics")
	}
	return response.OK(c, stats)
}

// CheckReminders runs the reminder check now
// @Summary Run vacation reminders
// @Description Sends manager reminders for upcoming vacation days at the 30/20/10/5/3/1 day marks
// @Tags Vacations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.ReminderRun
// @Router /vacations/reminders/check [get]
func (h *VacationHandler) CheckReminders(c *fiber.Ctx) error {
	run, err := h.reminderService.RunToday(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to check reminders")
	}
	if run.Reminders == nil {
		run.Reminders = []domain.ReminderGroup{}
	}
	return response.OK(c, run)
}

// queryYear reads the optional year filter; zero means all years
func queryYear(c *fiber.Ctx) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

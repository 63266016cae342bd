package handlers

import (
	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/core/services"
	"hr-selfservice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler exposes the read-only roster
type EmployeeHandler struct {
	gate *services.CredentialGate
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(gate *services.CredentialGate) *EmployeeHandler {
	return &EmployeeHandler{gate: gate}
}

// VerifyRequest is a credential pre-check
type VerifyRequest struct {
	Email  string `json:"email"`
	HRCode string `json:"hrCode"`
}

// EmployeeProfile is a roster entry without its HR code
type EmployeeProfile struct {
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	Department domain.Department `json:"department"`
	Experience *int              `json:"experience,omitempty"`
	Title      *domain.Title     `json:"title,omitempty"`
}

func newEmployeeProfile(e *domain.Employee) EmployeeProfile {
	return EmployeeProfile{
		Email:      e.Email,
		Name:       e.Name,
		Department: e.Department,
		Experience: e.Experience,
		Title:      e.Title,
	}
}

// Verify checks an email and HR code pair
// @Summary Verify employee credentials
// @Tags Employees
// @Accept json
// @Produce json
// @Param body body VerifyRequest true "Credentials"
// @Success 200 {object} EmployeeProfile
// @Failure 400 {object} response.ErrorBody
// @Router /employees/verify [post]
func (h *EmployeeHandler) Verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.HRCode == "" {
		return response.BadRequest(c, "Email and HR Code are required")
	}

	emp, err := h.gate.Validate(req.Email, req.HRCode)
	if err != nil {
		return handleError(c, err, "Failed to verify employee")
	}
	return response.OK(c, newEmployeeProfile(emp))
}

// List returns the roster
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	roster := h.gate.Employees()
	out := make([]EmployeeProfile, 0, len(roster))
	for i := range roster {
		out = append(out, newEmployeeProfile(&roster[i]))
	}
	return response.OK(c, out)
}

package handlers

import (
	"errors"

	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// handleError maps a service error to its HTTP response.
// fallback is shown for unexpected failures; the cause is only logged.
func handleError(c *fiber.Ctx, err error, fallback string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.BadRequest(c, verr.Message)
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return response.BadRequest(c, "Invalid email or HR code")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid username or password")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrAlreadyResolved):
		return response.Conflict(c, "Request has already been resolved")
	case errors.Is(err, domain.ErrSurveyExists):
		return response.Conflict(c, "HR Code already exists")
	case errors.Is(err, domain.ErrSurveyNotFound):
		return response.NotFound(c, "Survey not found")
	case errors.Is(err, domain.ErrRequestNotFound):
		return response.NotFound(c, "Request not found")
	case errors.Is(err, domain.ErrRecordNotFound):
		return response.NotFound(c, "Vacation record not found")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Not found")
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, "A conflicting record already exists")
	}

	logrus.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).WithError(err).Error("❌ Request failed")
	return response.InternalServerError(c, fallback)
}

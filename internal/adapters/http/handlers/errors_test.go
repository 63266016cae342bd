package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", domain.NewValidationError("year", "Invalid year"), http.StatusBadRequest, "Invalid year"},
		{"unknown employee", domain.ErrEmployeeNotFound, http.StatusBadRequest, "Invalid email or HR code"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"unauthorized", fmt.Errorf("load admin: %w", domain.ErrUnauthorized), http.StatusUnauthorized, "Authentication required"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "You don't have permission to access this resource"},
		{"already resolved", domain.ErrAlreadyResolved, http.StatusConflict, "Request has already been resolved"},
		{"request missing", domain.ErrRequestNotFound, http.StatusNotFound, "Request not found"},
		{"record missing", domain.ErrRecordNotFound, http.StatusNotFound, "Vacation record not found"},
		{"survey exists", domain.ErrSurveyExists, http.StatusConflict, "HR Code already exists"},
		{"survey missing", domain.ErrSurveyNotFound, http.StatusNotFound, "Survey not found"},
		{"conflict", domain.ErrConflict, http.StatusConflict, "A conflicting record already exists"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "Failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return handleError(c, tt.err, "Failed") })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body response.ErrorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

package handlers

import (
	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/core/services"
	"hr-selfservice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ServiceRequestHandler handles work-from-home, urgent vacation and need-help endpoints
type ServiceRequestHandler struct {
	requestService *services.ServiceRequestService
}

// NewServiceRequestHandler creates a new service request handler
func NewServiceRequestHandler(requestService *services.ServiceRequestService) *ServiceRequestHandler {
	return &ServiceRequestHandler{requestService: requestService}
}

// Submit handles a new request
// @Summary Submit service request
// @Description A pending work-from-home request is edited in place; other types always create a new request
// @Tags Services
// @Accept json
// @Produce json
// @Param body body services.ServiceRequestInput true "Request"
// @Success 201 {object} services.RequestResult
// @Success 200 {object} services.RequestResult
// @Failure 400 {object} response.ErrorBody
// @Router /services [post]
func (h *ServiceRequestHandler) Submit(c *fiber.Ctx) error {
	var req services.ServiceRequestInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.requestService.Submit(c.UserContext(), req)
	if err != nil {
		return handleError(c, err, "Failed to save request")
	}

	if result.IsUpdate {
		return response.OK(c, result)
	}
	return response.Created(c, result)
}

// List handles listing requests
// @Summary List service requests
// @Tags Services
// @Produce json
// @Param type query string false "Request type"
// @Param status query string false "Status"
// @Param email query string false "Employee email"
// @Success 200 {array} domain.ServiceRequest
// @Router /services [get]
func (h *ServiceRequestHandler) List(c *fiber.Ctx) error {
	requests, err := h.requestService.List(c.UserContext(), requestFilter(c))
	if err != nil {
		return handleError(c, err, "Failed to list requests")
	}
	if requests == nil {
		requests = []*domain.ServiceRequest{}
	}
	return response.OK(c, requests)
}

// Get handles fetching one request
func (h *ServiceRequestHandler) Get(c *fiber.Ctx) error {
	req, err := h.requestService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get request")
	}
	return response.OK(c, req)
}

// Stats handles request counts
func (h *ServiceRequestHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.requestService.Stats(c.UserContext(), requestFilter(c))
	if err != nil {
		return handleError(c, err, "Failed to build request statistics")
	}
	return response.OK(c, stats)
}

// UpdateStatus handles an admin decision
// @Summary Approve or reject a request
// @Tags Services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body services.UpdateStatusInput true "Decision"
// @Success 200 {object} domain.ServiceRequest
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /services/{id}/status [put]
func (h *ServiceRequestHandler) UpdateStatus(c *fiber.Ctx) error {
	var req services.UpdateStatusInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.requestService.UpdateStatus(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return handleError(c, err, "Failed to update request status")
	}
	return response.OK(c, updated)
}

// Delete handles removing one request
func (h *ServiceRequestHandler) Delete(c *fiber.Ctx) error {
	if err := h.requestService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err, "Failed to delete request")
	}
	return response.Success(c, "Request deleted")
}

// DeleteAll handles clearing every request
func (h *ServiceRequestHandler) DeleteAll(c *fiber.Ctx) error {
	n, err := h.requestService.DeleteAll(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to clear requests")
	}
	return response.OK(c, fiber.Map{
		"message": "All requests deleted",
		"deleted": n,
	})
}

func requestFilter(c *fiber.Ctx) domain.ServiceRequestFilter {
	return domain.ServiceRequestFilter{
		Type:   domain.RequestType(c.Query("type")),
		Status: domain.RequestStatus(c.Query("status")),
		Email:  c.Query("email"),
	}
}

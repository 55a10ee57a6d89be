package applications

import (
	"errors"
	"net/http"
	"strconv"

	"lawlink/internal/domain"
	"lawlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cases/:id/applications", h.Apply)
	rg.GET("/cases/:id/applications", h.ListByCase)
	rg.POST("/cases/:id/applications/:applicationId/approve", h.Approve)
	rg.POST("/applications/:applicationId/deny", h.Deny)
	rg.GET("/applications/my", h.ListMine)
}

func (h *Handler) Apply(c *gin.Context) {
	if c.GetString("role") != string(domain.RoleLawyer) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only lawyers can apply to cases")
		return
	}

	caseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Proposal is required")
		return
	}

	app, err := h.service.Apply(c.Request.Context(), caseID, c.GetInt64("user_id"), req.Proposal)
	if err != nil {
		h.writeError(c, err, "Failed to submit application")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"application": app})
}

func (h *Handler) Approve(c *gin.Context) {
	caseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	applicationID, ok := pathID(c, "applicationId")
	if !ok {
		return
	}

	err := h.service.Approve(c.Request.Context(), caseID, applicationID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to approve application")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"approved": true})
}

func (h *Handler) Deny(c *gin.Context) {
	applicationID, ok := pathID(c, "applicationId")
	if !ok {
		return
	}

	err := h.service.Deny(c.Request.Context(), applicationID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to deny application")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"denied": true})
}

func (h *Handler) ListByCase(c *gin.Context) {
	caseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.service.ListByCase(c.Request.Context(), caseID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to list applications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"applications": list})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to list applications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"applications": list})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCaseNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Case not found")
	case errors.Is(err, ErrApplicationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Application not found")
	case errors.Is(err, ErrCaseNotOpen):
		response.Error(c, http.StatusConflict, "CASE_NOT_OPEN", "Case is not open for applications")
	case errors.Is(err, ErrAlreadyApplied):
		response.Error(c, http.StatusConflict, "ALREADY_APPLIED", "You already applied to this case")
	case errors.Is(err, ErrAlreadyAssigned):
		response.Error(c, http.StatusConflict, "ALREADY_ASSIGNED", "Case already has an assigned lawyer")
	case errors.Is(err, ErrNotPending):
		response.Error(c, http.StatusConflict, "NOT_PENDING", "Application is no longer pending")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "OPERATION_FAILED", fallback)
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

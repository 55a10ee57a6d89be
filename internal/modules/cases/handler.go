package cases

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
	rg.POST("/cases", h.CreateCase)
	rg.GET("/cases/my", h.ListMyCases)
	rg.GET("/cases/assigned", h.ListAssignedCases)
	rg.GET("/cases/open", h.ListOpenCases)
	rg.GET("/cases/:id", h.GetCase)
	rg.PATCH("/cases/:id", h.UpdateCase)
	rg.POST("/cases/:id/milestones", h.AddMilestone)
	rg.PATCH("/cases/:id/milestones/:milestoneId", h.UpdateMilestone)
	rg.DELETE("/cases/:id/milestones/:milestoneId", h.RemoveMilestone)
}

func (h *Handler) CreateCase(c *gin.Context) {
	if role := c.GetString("role"); role != string(domain.RoleClient) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only clients can open cases")
		return
	}

	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.CreateCase(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create case")
		return
	}

	response.Success(c, http.StatusCreated, toCaseResponse(created))
}

func (h *Handler) GetCase(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.service.GetCase(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load case")
		return
	}

	response.Success(c, http.StatusOK, toCaseResponse(found))
}

func (h *Handler) ListMyCases(c *gin.Context) {
	list, err := h.service.ListClientCases(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to list cases")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cases": toCaseResponses(list)})
}

func (h *Handler) ListAssignedCases(c *gin.Context) {
	list, err := h.service.ListAssignedCases(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to list cases")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cases": toCaseResponses(list)})
}

func (h *Handler) ListOpenCases(c *gin.Context) {
	var lawyerID int64
	if c.GetString("role") == string(domain.RoleLawyer) {
		lawyerID = c.GetInt64("user_id")
	}

	list, err := h.service.ListOpenCases(c.Request.Context(), lawyerID)
	if err != nil {
		h.writeError(c, err, "Failed to list open cases")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cases": toCaseResponses(list)})
}

func (h *Handler) UpdateCase(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	updated, err := h.service.UpdateCase(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update case")
		return
	}

	response.Success(c, http.StatusOK, toCaseResponse(updated))
}

func (h *Handler) AddMilestone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	updated, err := h.service.AddMilestone(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to add milestone")
		return
	}

	response.Success(c, http.StatusCreated, toCaseResponse(updated))
}

func (h *Handler) UpdateMilestone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	updated, err := h.service.UpdateMilestone(c.Request.Context(), id, c.GetInt64("user_id"), c.Param("milestoneId"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update milestone")
		return
	}

	response.Success(c, http.StatusOK, toCaseResponse(updated))
}

func (h *Handler) RemoveMilestone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	updated, err := h.service.RemoveMilestone(c.Request.Context(), id, c.GetInt64("user_id"), c.Param("milestoneId"))
	if err != nil {
		h.writeError(c, err, "Failed to remove milestone")
		return
	}

	response.Success(c, http.StatusOK, toCaseResponse(updated))
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErr.Problems)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Case not found")
	case errors.Is(err, ErrMilestoneNotFound):
		response.Error(c, http.StatusNotFound, "MILESTONE_NOT_FOUND", "Milestone not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this case")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Case was modified concurrently, try again")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
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

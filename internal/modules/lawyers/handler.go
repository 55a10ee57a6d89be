package lawyers

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

// Public browsing endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/lawyers", h.List)
	rg.GET("/lawyers/:id", h.GetByID)
}

// RegisterProtectedRoutes requires an authenticated lawyer.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/lawyers/me", h.UpdateMe)
}

func (h *Handler) List(c *gin.Context) {
	var q ListLawyersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list lawyers")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lawyer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load lawyer")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lawyer": p})
}

type updateMeRequest struct {
	Specialization  *string  `json:"specialization"`
	City            *string  `json:"city"`
	YearsExperience *int     `json:"years_experience"`
	HourlyRate      *float64 `json:"hourly_rate"`
	Bio             *string  `json:"bio"`
	PhotoURL        *string  `json:"photo_url"`
}

func (h *Handler) UpdateMe(c *gin.Context) {
	if c.GetString("role") != string(domain.RoleLawyer) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only lawyers have a profile")
		return
	}

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdateOwnProfile(c.Request.Context(), c.GetInt64("user_id"), func(p *domain.LawyerProfile) {
		if req.Specialization != nil {
			p.Specialization = *req.Specialization
		}
		if req.City != nil {
			p.City = *req.City
		}
		if req.YearsExperience != nil {
			p.YearsExperience = *req.YearsExperience
		}
		if req.HourlyRate != nil {
			p.HourlyRate = *req.HourlyRate
		}
		if req.Bio != nil {
			p.Bio = *req.Bio
		}
		if req.PhotoURL != nil {
			p.PhotoURL = *req.PhotoURL
		}
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lawyer": p})
}

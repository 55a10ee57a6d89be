package admin

import (
	"errors"
	"net/http"
	"strconv"

	"lawlink/internal/domain"
	"lawlink/internal/pkg/response"
	"lawlink/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already gated by the admin role middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin")
	{
		g.GET("/cases", h.ListCases)
		g.DELETE("/cases/:id", h.DeleteCase)
		g.GET("/lawyers", h.ListLawyers)
		g.POST("/lawyers", h.CreateLawyer)
		g.PATCH("/lawyers/:id", h.UpdateLawyer)
		g.DELETE("/lawyers/:id", h.DeleteLawyer)
		g.GET("/stats", h.Stats)
	}
}

func (h *Handler) ListCases(c *gin.Context) {
	f := repository.CaseFilters{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
	}
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			f.Limit = v
		}
	}

	list, err := h.service.ListCases(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list cases")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cases": list})
}

func (h *Handler) DeleteCase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCase(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Case not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete case")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListLawyers(c *gin.Context) {
	f := repository.LawyerFilters{
		Specialization: c.Query("specialization"),
		City:           c.Query("city"),
	}
	list, total, err := h.service.ListLawyers(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list lawyers")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lawyers": list, "total": total})
}

type createLawyerRequest struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=6"`
	Specialization  string  `json:"specialization" binding:"required"`
	City            string  `json:"city" binding:"required"`
	YearsExperience int     `json:"years_experience" binding:"gte=0"`
	HourlyRate      float64 `json:"hourly_rate" binding:"gte=0"`
	Bio             string  `json:"bio"`
	PhotoURL        string  `json:"photo_url"`
}

func (h *Handler) CreateLawyer(c *gin.Context) {
	var req createLawyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.CreateLawyer(c.Request.Context(), CreateLawyerInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Specialization:  req.Specialization,
		City:            req.City,
		YearsExperience: req.YearsExperience,
		HourlyRate:      req.HourlyRate,
		Bio:             req.Bio,
		PhotoURL:        req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create lawyer")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"lawyer": p})
}

type updateLawyerRequest struct {
	Name            *string  `json:"name"`
	Specialization  *string  `json:"specialization"`
	City            *string  `json:"city"`
	YearsExperience *int     `json:"years_experience"`
	HourlyRate      *float64 `json:"hourly_rate"`
	Bio             *string  `json:"bio"`
	PhotoURL        *string  `json:"photo_url"`
}

func (h *Handler) UpdateLawyer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateLawyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdateLawyer(c.Request.Context(), id, func(p *domain.LawyerProfile) {
		if req.Name != nil {
			p.Name = *req.Name
		}
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
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lawyer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update lawyer")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lawyer": p})
}

func (h *Handler) DeleteLawyer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteLawyer(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lawyer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete lawyer")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load stats")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapi/internal/middleware"
	"blogapi/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the admin endpoints. The group is expected to be
// behind JWTAuth plus AdminOnly.
func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/users", h.ListUsers)
	adminGroup.GET("/stats", h.Stats)
}

// ListUsers godoc
// @Summary List all users (admin)
// @Description Returns user records without password hashes.
// @Tags Admin
// @Security BearerAuth
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401,403 {object} map[string]interface{}
// @Router /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	var q ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination parameters")
		return
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), middleware.Identity(c), q.Page, q.Limit)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin role required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  q.Page,
		"limit": q.Limit,
	})
}

// Stats godoc
// @Summary Platform statistics (admin)
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401,403 {object} map[string]interface{}
// @Router /admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin role required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STATS_FAILED", "Failed to load statistics")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapi/internal/middleware"
	"blogapi/internal/pkg/response"
)

// Handler handles HTTP requests for file uploads. All routes require a
// session; downloads are additionally gated by ownership.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("", h.Upload)
		uploads.GET("", h.List)
		uploads.GET("/:id/download", h.Download)
		uploads.DELETE("/:id", h.Delete)
	}
}

// Upload godoc
// @Summary Upload a file
// @Description Stores a file under a server-generated name. The upload is owned by the authenticated user.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,401,413 {object} map[string]interface{}
// @Router /uploads [post]
func (h *Handler) Upload(c *gin.Context) {
	identity := middleware.Identity(c)
	if identity == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file in request")
		return
	}

	u, err := h.service.Save(c.Request.Context(), identity, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "Uploaded file is empty")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the maximum allowed size")
		case errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "File type is not allowed")
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store file")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"upload": u})
}

// List godoc
// @Summary List own uploads
// @Tags Uploads
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /uploads [get]
func (h *Handler) List(c *gin.Context) {
	identity := middleware.Identity(c)
	if identity == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	uploads, err := h.service.ListOwn(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list uploads")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"uploads": uploads})
}

// Download godoc
// @Summary Download an upload
// @Description Only the owner or an admin may download; others get 404.
// @Tags Uploads
// @Security BearerAuth
// @Param id path string true "upload id"
// @Success 200 {file} binary
// @Failure 401,404 {object} map[string]interface{}
// @Router /uploads/{id}/download [get]
func (h *Handler) Download(c *gin.Context) {
	identity := middleware.Identity(c)
	if identity == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	u, absPath, err := h.service.GetForDownload(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrUploadNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Upload not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", "Failed to load upload")
		return
	}

	c.FileAttachment(absPath, u.OriginalName)
}

// Delete godoc
// @Summary Delete an upload
// @Tags Uploads
// @Security BearerAuth
// @Param id path string true "upload id"
// @Success 200 {object} map[string]interface{}
// @Failure 401,404 {object} map[string]interface{}
// @Router /uploads/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	identity := middleware.Identity(c)
	if identity == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		if errors.Is(err, ErrUploadNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Upload not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete upload")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Upload deleted"})
}

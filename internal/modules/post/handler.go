package post

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterReadRoutes attaches the read endpoints. They sit behind optional
// auth: anonymous callers see public posts only.
func (h *Handler) RegisterReadRoutes(g *gin.RouterGroup) {
	posts := g.Group("/posts")
	{
		posts.GET("", h.List)
		posts.GET("/:id", h.Get)
	}
}

// RegisterWriteRoutes attaches the endpoints that require a session.
func (h *Handler) RegisterWriteRoutes(protected *gin.RouterGroup) {
	posts := protected.Group("/posts")
	{
		posts.POST("", h.Create)
		posts.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary List visible posts
// @Description Public posts for everyone; authenticated users also see their own private posts, admins see all.
// @Tags Posts
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]interface{}
// @Router /posts [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination parameters")
		return
	}

	posts, total, err := h.service.List(c.Request.Context(), middleware.Identity(c), q.Page, q.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list posts")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"posts": posts,
		"total": total,
		"page":  q.Page,
		"limit": q.Limit,
	})
}

// Get godoc
// @Summary Get a single post
// @Description Private posts are visible to their owner and admins only; everyone else gets 404.
// @Tags Posts
// @Param id path int true "post id"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
// @Router /posts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), middleware.Identity(c), id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "GET_FAILED", "Failed to load post")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post": p})
}

// Create godoc
// @Summary Create a post
// @Description The post is always owned by the authenticated user.
// @Tags Posts
// @Security BearerAuth
// @Param request body CreatePostRequest true "title, content, visibility"
// @Success 201 {object} map[string]interface{}
// @Failure 400,401 {object} map[string]interface{}
// @Router /posts [post]
func (h *Handler) Create(c *gin.Context) {
	identity := middleware.Identity(c)
	if identity == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create post")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"post": p})
}

// Delete godoc
// @Summary Delete a post
// @Description Only the owner or an admin may delete a post.
// @Tags Posts
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403,404 {object} map[string]interface{}
// @Router /posts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	identity := middleware.Identity(c)
	if identity == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
		case errors.Is(err, ErrNotPostOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this post")
		default:
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete post")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Post deleted"})
}

// postID parses the :id path segment as an integer. Malformed ids are a
// 400, never something that reaches query text.
func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID")
		return 0, false
	}
	return id, true
}

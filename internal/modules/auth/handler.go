package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapi/internal/pkg/password"
	"blogapi/internal/pkg/response"
	"blogapi/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me/password", h.ChangePassword)
	}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user account. Username and email must be unique; the password must satisfy the password policy.
// @Tags Auth
// @Param request body RegisterRequest true "username, email, password"
// @Success 201 {object} map[string]interface{}
// @Failure 400,409 {object} map[string]interface{}
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data", fieldErrs)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			response.Error(c, http.StatusConflict, "USERNAME_EXISTS", "This username is already taken")
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case isWeakPassword(err):
			response.Error(c, http.StatusBadRequest, "WEAK_PASSWORD", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": UserPublic{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		},
	})
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a short-lived access token plus a rotating refresh token.
// @Tags Auth
// @Param request body LoginRequest true "username, password"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Username or password is incorrect")
		case errors.Is(err, ErrAccountLocked):
			response.Error(c, http.StatusForbidden, "ACCOUNT_LOCKED", "Account temporarily locked, try again later")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{
			ID:       result.User.ID,
			Username: result.User.Username,
			Email:    result.User.Email,
			Role:     string(result.User.Role),
		},
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

// Refresh godoc
// @Summary Rotate a refresh token
// @Tags Auth
// @Param request body RefreshRequest true "refresh_token"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401 {object} map[string]interface{}
// @Router /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrRefreshTokenReused):
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is invalid")
		default:
			response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented refresh token. Always succeeds for unknown tokens.
// @Tags Auth
// @Param request body LogoutRequest true "refresh_token"
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe godoc
// @Summary Get the current user's profile
// @Tags Users
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401,404 {object} map[string]interface{}
// @Router /users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Description Requires the current password. All refresh tokens are revoked on success.
// @Tags Users
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "current_password, new_password"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401 {object} map[string]interface{}
// @Router /users/me/password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Current password is incorrect")
		case isWeakPassword(err):
			response.Error(c, http.StatusBadRequest, "WEAK_PASSWORD", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to change password")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password changed"})
}

func isWeakPassword(err error) bool {
	return errors.Is(err, password.ErrTooShort) ||
		errors.Is(err, password.ErrTooWeak) ||
		errors.Is(err, password.ErrWellKnown)
}

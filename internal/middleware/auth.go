package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blogapi/internal/domain"
	"blogapi/internal/pkg/authz"
	jwtsvc "blogapi/internal/pkg/jwt"
	"blogapi/internal/pkg/response"
)

const (
	ctxUserIDKey = "user_id"
	ctxRoleKey   = "role"
)

// JWTAuth requires a valid bearer token. The token signature and expiry are
// always verified; on success user_id and role are stored in the gin context.
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, errCode := bearerToken(c)
		if errCode != "" {
			response.Error(c, http.StatusUnauthorized, errCode, "Authentication required")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, tokenErrorCode(err), "Invalid token")
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

// OptionalJWTAuth lets anonymous requests through but still rejects requests
// that present an invalid token. Used on endpoints where public resources are
// readable without a session.
func OptionalJWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}

		tokenStr, errCode := bearerToken(c)
		if errCode != "" {
			response.Error(c, http.StatusUnauthorized, errCode, "Authentication required")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, tokenErrorCode(err), "Invalid token")
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

// Identity returns the authenticated identity from the gin context, or nil
// for anonymous requests.
func Identity(c *gin.Context) *authz.Identity {
	userIDAny, ok := c.Get(ctxUserIDKey)
	if !ok {
		return nil
	}
	userID, ok := userIDAny.(int64)
	if !ok || userID == 0 {
		return nil
	}
	return &authz.Identity{
		UserID: userID,
		Role:   domain.UserRole(c.GetString(ctxRoleKey)),
	}
}

func bearerToken(c *gin.Context) (token string, errCode string) {
	h := c.GetHeader("Authorization")
	if h == "" {
		return "", "AUTH_HEADER_MISSING"
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return "", "INVALID_AUTH_FORMAT"
	}
	token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		return "", "INVALID_AUTH_FORMAT"
	}
	return token, ""
}

func tokenErrorCode(err error) string {
	if errors.Is(err, jwtsvc.ErrTokenExpired) {
		return "TOKEN_EXPIRED"
	}
	return "INVALID_TOKEN"
}

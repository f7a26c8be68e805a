package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"blogapi/internal/pkg/response"
)

// RequestLogger logs every request with its outcome and recovers from
// panics so a single failed request cannot take the process down.
// Authorization headers and request bodies are never logged.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error().
					Interface("panic", recovered).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("request_id", requestID(c)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error")
				c.Abort()
			}
		}()

		c.Next()

		event := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = log.Error()
		} else if c.Writer.Status() >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Int("status", c.Writer.Status()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int64("user_id", c.GetInt64(ctxUserIDKey)).
			Str("request_id", requestID(c)).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}

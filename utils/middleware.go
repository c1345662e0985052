package utils

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "RequestID"

// LoggerMiddleware writes one line per request, plus the caller's id when a
// signed-in request fails.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		requestID := c.GetString(requestIDKey)
		LogRequest(requestID, c.Request.Method, path, c.ClientIP(), status, time.Since(start))
		if query != "" {
			LogDebug("Query parameters: %s", query)
		}
		if status >= http.StatusBadRequest {
			if user, ok := c.Get("user"); ok {
				if u, ok := user.(models.User); ok {
					LogDebug("Request %s failed for user %d (%s)", requestID, u.ID, u.Role)
				}
			}
		}
	}
}

// CORSMiddleware allows browser calls from origins. An empty list allows any
// origin. The Origin header is echoed back so the session cookie can travel
// with credentialed requests.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (len(allowed) == 0 || allowed[origin]) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			h.Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Max-Age", "86400")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RecoveryMiddleware turns a panic into a logged 500.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				LogErrorWithStack(fmt.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err), debug.Stack())
				InternalServerError(c, "Internal server error", nil)
			}
		}()
		c.Next()
	}
}

// RequestIDMiddleware reuses the caller's X-Request-ID or mints one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// SecurityHeadersMiddleware sets the headers every response carries. HSTS is
// only sent when secure is set.
func SecurityHeadersMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cache-Control", "no-store")
		if secure {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

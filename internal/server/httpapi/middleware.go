package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
)

// claimsKey is the gin context key under which the bearer gate stores the
// verified token claims.
const claimsKey = "authClaims"

const bearerPrefix = "Bearer "

// requestLogger opens a correlation scope for every request: it generates a
// request id, stores a scoped logger in the request context, and emits
// exactly one start and one completion record per request. The completion
// record is deferred so every exit path, panics included, produces it.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		operation := c.Request.URL.Path
		method := c.Request.Method

		log := logger.With("request_id", requestID)
		ctx := logging.ToContext(c.Request.Context(), log)
		c.Request = c.Request.WithContext(ctx)

		log.Debug(ctx, "Request started", "operation", operation, "method", method)

		defer func() {
			status := c.Writer.Status()
			args := []any{
				"operation", operation,
				"method", method,
				"duration_ms", time.Since(start).Milliseconds(),
				"status", status,
			}
			if last := c.Errors.Last(); last != nil {
				args = append(args, "error", last.Error())
			}

			switch {
			case status >= http.StatusInternalServerError:
				log.Error(ctx, "Request completed", args...)
			case status >= http.StatusBadRequest:
				log.Warn(ctx, "Request completed", args...)
			default:
				log.Info(ctx, "Request completed", args...)
			}
		}()

		c.Next()
	}
}

// bearerTokenGate verifies the Authorization bearer token signature and makes
// the decoded claims available to handlers. Expired tokens pass through: the
// liveness endpoint reports their state instead of the gate rejecting them.
func bearerTokenGate(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"valid":   false,
				"message": "Missing bearer token",
			})
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, bearerPrefix), secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"valid":   false,
				"message": "Invalid token",
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

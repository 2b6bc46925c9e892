package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/logging"
)

const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware ensures every request has a stable request ID.
// - Reads X-Request-Id header if present, otherwise generates one
// - Stores it in the gin context and the request context (see logging.RequestID)
// - Echoes it back in the response header
// - Logs method, path, status and latency
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), rid))
		c.Writer.Header().Set(RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		logging.Base().Info("request",
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

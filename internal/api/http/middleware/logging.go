package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/expense-auth/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// Logging logs every HTTP request with its status and duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle tags the request with an ID and logs it once the handler chain returns.
// Bodies are never logged.
func (l *Logging) Handle(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)

	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	attrs := []any{
		"request_id", requestID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"client_ip", c.ClientIP(),
	}

	switch {
	case status >= http.StatusInternalServerError:
		l.logger.Error("HTTP request failed", attrs...)
	case status >= http.StatusBadRequest:
		l.logger.Warn("HTTP request rejected", attrs...)
	default:
		l.logger.Info("HTTP request completed", attrs...)
	}
}

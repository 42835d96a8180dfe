package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/kameti-auth/internal/logger"
)

// Logging logs HTTP requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			// let the error handler write the response so the final status is known
			c.Error(err)
		}

		l.logger.Info("HTTP request completed",
			"method", req.Method,
			"path", c.Path(),
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"size", c.Response().Size)

		return nil
	}
}

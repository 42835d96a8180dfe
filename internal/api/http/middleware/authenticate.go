package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/kameti-auth/internal/apierror"
	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// TokenService resolves session claims from the session cookie.
type TokenService interface {
	CookieName() string
	Resolve(token string) (model.Claims, error)
}

// Authenticate validates the session cookie and injects its claims into the request context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid session cookie.
func (m *Authenticate) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.tokenService.CookieName())
		if err != nil || cookie.Value == "" {
			if err != nil && !errors.Is(err, http.ErrNoCookie) {
				m.logger.Debug("Authenticate middleware: unreadable session cookie",
					"error", err.Error())
			}
			return apierror.NewErrMissingAuthorizationToken()
		}

		claims, err := m.tokenService.Resolve(cookie.Value)
		if err != nil {
			return apierror.NewErrInvalidAuthorizationToken()
		}

		req := c.Request()
		c.SetRequest(req.WithContext(m.contextManager.SetClaimsToContext(req.Context(), claims)))

		return next(c)
	}
}

// RequireRole allows only sessions whose role is one of roles. It must run after Authenticate.
func RequireRole(contextManager model.ContextManager, roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := contextManager.GetClaimsFromContext(c.Request().Context())
			if !ok {
				return apierror.NewErrMissingAuthorizationToken()
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return apierror.NewErrForbidden()
		}
	}
}

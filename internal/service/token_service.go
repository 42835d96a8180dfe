package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// CookieSettings describes the session cookie.
type CookieSettings struct {
	Name       string
	MaxAge     time.Duration
	Production bool
}

// TokenService issues session tokens and moves them in and out of cookies.
type TokenService struct {
	manager model.TokenManager
	cookie  CookieSettings
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, cookie CookieSettings, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, cookie: cookie, logger: logger}
}

// CookieName returns the name of the session cookie.
func (s *TokenService) CookieName() string {
	return s.cookie.Name
}

func (s *TokenService) Issue(accountID uuid.UUID, role model.Role) (string, error) {
	token, err := s.manager.Generate(accountID, role)
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}
	return token, nil
}

// Attach sets the session cookie carrying token on w.
func (s *TokenService) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.newCookie(token, int(s.cookie.MaxAge/time.Second)))
}

// Clear expires the session cookie on w.
func (s *TokenService) Clear(w http.ResponseWriter) {
	c := s.newCookie("", -1)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// Resolve validates token and returns its claims. Any failure wraps model.ErrInvalidToken.
func (s *TokenService) Resolve(token string) (model.Claims, error) {
	claims, err := s.manager.Parse(token)
	if err != nil {
		s.logger.Debug("Token service: rejected session token",
			"error", err.Error())
		return model.Claims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	return claims, nil
}

func (s *TokenService) newCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if s.cookie.Production {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     s.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.cookie.Production,
		SameSite: sameSite,
	}
}

package handler

import (
	"context"
	"net/http"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/kameti-auth/internal/apierror"
	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// AuthService defines the OTP-gated authentication operations.
type AuthService interface {
	RequestOTP(ctx context.Context, email string, purpose model.Purpose, userName string) error
	VerifyOTP(ctx context.Context, email, code string, purpose model.Purpose) error
	Register(ctx context.Context, w http.ResponseWriter, params model.SignupParams) (model.Session, error)
	Login(ctx context.Context, w http.ResponseWriter, email, password string) (model.Session, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	Logout(w http.ResponseWriter)
}

// Auth handles the /auth endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type requestOTPRequest struct {
	Email    string `json:"email"`
	Type     string `json:"type"`
	UserName string `json:"userName"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	Type  string `json:"type"`
}

type signupRequest struct {
	UserName       string     `json:"userName"`
	Email          string     `json:"email"`
	Password       string     `json:"password"`
	Role           string     `json:"role"`
	PhoneNumber    *string    `json:"phoneNumber"`
	TrailStartDate *time.Time `json:"trailStartDate"`
	TrailEndDate   *time.Time `json:"trailEndDate"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// RequestOTP handles POST /auth/request-otp.
func (h *Auth) RequestOTP(c echo.Context) error {
	var req requestOTPRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrBadRequest("invalid request body")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	purpose, err := model.ParsePurpose(req.Type)
	if err != nil {
		return apierror.NewErrBadRequest("type must be one of SIGNUP, LOGIN, FORGOT_PASSWORD")
	}

	if err := h.authService.RequestOTP(c.Request().Context(), req.Email, purpose, strings.TrimSpace(req.UserName)); err != nil {
		return err
	}

	return success(c, http.StatusOK, "OTP sent successfully", nil)
}

// VerifyOTP handles POST /auth/verify-otp.
func (h *Auth) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrBadRequest("invalid request body")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	code := strings.TrimSpace(req.OTP)
	if code == "" {
		return apierror.NewErrBadRequest("otp is required")
	}
	purpose, err := model.ParsePurpose(req.Type)
	if err != nil {
		return apierror.NewErrBadRequest("type must be one of SIGNUP, LOGIN, FORGOT_PASSWORD")
	}

	if err := h.authService.VerifyOTP(c.Request().Context(), req.Email, code, purpose); err != nil {
		return err
	}

	return success(c, http.StatusOK, "OTP verified successfully", nil)
}

// Signup handles POST /auth/signup.
func (h *Auth) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrBadRequest("invalid request body")
	}
	if strings.TrimSpace(req.UserName) == "" {
		return apierror.NewErrBadRequest("userName is required")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return apierror.NewErrBadRequest("password is required")
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return apierror.NewErrBadRequest("role must be USER or ADMIN")
	}
	if req.TrailStartDate != nil && req.TrailEndDate != nil && req.TrailEndDate.Before(*req.TrailStartDate) {
		return apierror.NewErrBadRequest("trailEndDate must not precede trailStartDate")
	}

	session, err := h.authService.Register(c.Request().Context(), c.Response(), model.SignupParams{
		UserName:       strings.TrimSpace(req.UserName),
		Email:          req.Email,
		Password:       req.Password,
		Role:           role,
		PhoneNumber:    req.PhoneNumber,
		TrialStartDate: req.TrailStartDate,
		TrialEndDate:   req.TrailEndDate,
	})
	if err != nil {
		return err
	}

	return success(c, http.StatusCreated, "User registered successfully", session)
}

// Login handles POST /auth/login.
func (h *Auth) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrBadRequest("invalid request body")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return apierror.NewErrBadRequest("password is required")
	}

	session, err := h.authService.Login(c.Request().Context(), c.Response(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Login successful", session)
}

// ResetPassword handles POST /auth/reset-password.
func (h *Auth) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrBadRequest("invalid request body")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.NewPassword == "" {
		return apierror.NewErrBadRequest("newPassword is required")
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		return err
	}

	return success(c, http.StatusOK, "Password reset successfully", nil)
}

// Logout handles POST /auth/logout.
func (h *Auth) Logout(c echo.Context) error {
	h.authService.Logout(c.Response())
	return success(c, http.StatusOK, "Logged out successfully", nil)
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apierror.NewErrBadRequest("email is required")
	}
	if _, err := netmail.ParseAddress(email); err != nil {
		return apierror.NewErrBadRequest("email is invalid")
	}
	return nil
}

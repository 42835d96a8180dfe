package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/kameti-auth/internal/apierror"
	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// AccountService defines account reads and role administration.
type AccountService interface {
	Profile(ctx context.Context, id uuid.UUID) (model.AccountView, error)
	ChangeRole(ctx context.Context, email string, role model.Role) (model.AccountView, error)
	List(ctx context.Context) ([]model.AccountView, error)
	Get(ctx context.Context, id uuid.UUID) (model.AccountView, error)
	Update(ctx context.Context, email string, update model.AccountUpdate) (model.AccountView, error)
}

// User handles the /users endpoints.
type User struct {
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(accountService AccountService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

type updateUserRequest struct {
	UserName       *string    `json:"userName"`
	PhoneNumber    *string    `json:"phoneNumber"`
	Role           *string    `json:"role"`
	TrailStartDate *time.Time `json:"trailStartDate"`
	TrailEndDate   *time.Time `json:"trailEndDate"`
}

// Profile handles GET /users/profile.
func (h *User) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	claims, ok := h.contextManager.GetClaimsFromContext(ctx)
	if !ok {
		return apierror.NewErrMissingAuthorizationToken()
	}

	view, err := h.accountService.Profile(ctx, claims.AccountID)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "User found successfully", view)
}

// ChangeRole handles PATCH /users/:email/role.
func (h *User) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrBadRequest("invalid request body")
	}
	email := c.Param("email")
	if err := validateEmail(email); err != nil {
		return err
	}
	if req.Role == "" {
		return apierror.NewErrBadRequest("role is required")
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return apierror.NewErrBadRequest("role must be USER or ADMIN")
	}

	view, err := h.accountService.ChangeRole(c.Request().Context(), email, role)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "User updated successfully", view)
}

// List handles GET /users.
func (h *User) List(c echo.Context) error {
	views, err := h.accountService.List(c.Request().Context())
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Users found successfully", views)
}

// Get handles GET /users/:id.
func (h *User) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierror.NewErrBadRequest("id must be a valid UUID")
	}

	view, err := h.accountService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "User found successfully", view)
}

// Update handles PATCH /users/update?email=.
func (h *User) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrBadRequest("invalid request body")
	}
	email := c.QueryParam("email")
	if err := validateEmail(email); err != nil {
		return err
	}

	update := model.AccountUpdate{
		PhoneNumber:    req.PhoneNumber,
		TrialStartDate: req.TrailStartDate,
		TrialEndDate:   req.TrailEndDate,
	}
	if req.UserName != nil {
		name := strings.TrimSpace(*req.UserName)
		if name == "" {
			return apierror.NewErrBadRequest("userName must not be empty")
		}
		update.UserName = &name
	}
	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil || *req.Role == "" {
			return apierror.NewErrBadRequest("role must be USER or ADMIN")
		}
		update.Role = &role
	}
	if update.TrialStartDate != nil && update.TrialEndDate != nil && update.TrialEndDate.Before(*update.TrialStartDate) {
		return apierror.NewErrBadRequest("trailEndDate must not precede trailStartDate")
	}
	if update == (model.AccountUpdate{}) {
		return apierror.NewErrBadRequest("nothing to update")
	}

	view, err := h.accountService.Update(c.Request().Context(), email, update)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "User updated successfully", view)
}

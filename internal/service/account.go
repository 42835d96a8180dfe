package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/kameti-auth/internal/apierror"
	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// Accounts serves account reads and role administration.
type Accounts struct {
	store       model.AccountStore
	trialPeriod time.Duration
	now         func() time.Time
	logger      *logger.Logger
}

func NewAccounts(store model.AccountStore, trialPeriod time.Duration, logger *logger.Logger) *Accounts {
	if trialPeriod <= 0 {
		trialPeriod = model.DefaultTrialPeriod
	}
	return &Accounts{
		store:       store,
		trialPeriod: trialPeriod,
		now:         time.Now,
		logger:      logger,
	}
}

// Profile returns the view of the account with id.
func (s *Accounts) Profile(ctx context.Context, id uuid.UUID) (model.AccountView, error) {
	return s.Get(ctx, id)
}

// Get returns the view of the account with id.
func (s *Accounts) Get(ctx context.Context, id uuid.UUID) (model.AccountView, error) {
	account, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AccountView{}, apierror.NewErrAccountGone()
		}
		s.logger.Error("Accounts service: failed to get account by id",
			"account_id", id,
			"error", err.Error())
		return model.AccountView{}, apierror.NewErrInternalServerError(err)
	}

	return account.View(), nil
}

// List returns the views of all accounts.
func (s *Accounts) List(ctx context.Context) ([]model.AccountView, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("Accounts service: failed to list accounts",
			"error", err.Error())
		return nil, apierror.NewErrInternalServerError(err)
	}

	views := make([]model.AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, account.View())
	}
	return views, nil
}

// Update applies an administrative edit to the account with email. When the role or
// either trial date changes the window is re-derived, with omitted dates taken from
// the stored account.
func (s *Accounts) Update(ctx context.Context, email string, update model.AccountUpdate) (model.AccountView, error) {
	email = model.NormalizeEmail(email)

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AccountView{}, apierror.NewErrAccountNotFound(email)
		}
		s.logger.Error("Accounts service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return model.AccountView{}, apierror.NewErrInternalServerError(err)
	}

	patch := model.AccountPatch{
		UserName:    update.UserName,
		PhoneNumber: update.PhoneNumber,
		Role:        update.Role,
	}

	if update.Role != nil || update.TrialStartDate != nil || update.TrialEndDate != nil {
		role := account.Role
		if update.Role != nil {
			role = *update.Role
		}
		start, end := account.TrialStartDate, account.TrialEndDate
		if update.TrialStartDate != nil {
			start, end = update.TrialStartDate, nil
		}
		if update.TrialEndDate != nil {
			end = update.TrialEndDate
		}
		trial := model.DeriveTrialWindow(role, start, end, s.now(), s.trialPeriod)
		patch.Trial = &trial
	}

	if patch.Empty() {
		return account.View(), nil
	}

	return s.apply(ctx, email, patch)
}

func (s *Accounts) apply(ctx context.Context, email string, patch model.AccountPatch) (model.AccountView, error) {
	updated, err := s.store.UpdateByEmail(ctx, email, patch)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AccountView{}, apierror.NewErrAccountNotFound(email)
		}
		s.logger.Error("Accounts service: failed to update account",
			"email", email,
			"error", err.Error())
		return model.AccountView{}, apierror.NewErrInternalServerError(err)
	}

	s.logger.Info("Accounts service: account updated",
		"email", email)

	return updated.View(), nil
}

// ChangeRole sets the role of the account and recomputes its trial window.
// A USER keeps its dates, an ADMIN loses them and a promoted-back USER gets a fresh window.
func (s *Accounts) ChangeRole(ctx context.Context, email string, role model.Role) (model.AccountView, error) {
	email = model.NormalizeEmail(email)

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AccountView{}, apierror.NewErrAccountNotFound(email)
		}
		s.logger.Error("Accounts service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return model.AccountView{}, apierror.NewErrInternalServerError(err)
	}

	trial := model.DeriveTrialWindow(role, account.TrialStartDate, account.TrialEndDate, s.now(), s.trialPeriod)

	updated, err := s.store.UpdateByEmail(ctx, email, model.AccountPatch{
		Role:  &role,
		Trial: &trial,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AccountView{}, apierror.NewErrAccountNotFound(email)
		}
		s.logger.Error("Accounts service: failed to update role",
			"email", email,
			"error", err.Error())
		return model.AccountView{}, apierror.NewErrInternalServerError(err)
	}

	s.logger.Info("Accounts service: role changed",
		"email", email,
		"from", account.Role,
		"to", role)

	return updated.View(), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/kameti-auth/internal/apierror"
	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// LoginPolicy selects which factors Login requires.
type LoginPolicy string

const (
	// LoginPolicyOTP requires a verified LOGIN OTP followed by the password.
	LoginPolicyOTP LoginPolicy = "otp"
	// LoginPolicyPassword requires the password only.
	LoginPolicyPassword LoginPolicy = "password"
)

// AuthSettings tunes the Auth service.
type AuthSettings struct {
	LoginPolicy LoginPolicy
	TrialPeriod time.Duration
}

// Auth drives the OTP-gated signup, login and password reset flows.
type Auth struct {
	accounts    model.AccountStore
	otp         *OTP
	composer    model.OTPComposer
	notifier    model.Notifier
	hasher      model.PasswordHasher
	tokens      *TokenService
	policy      LoginPolicy
	trialPeriod time.Duration
	now         func() time.Time
	logger      *logger.Logger
}

func NewAuth(
	accounts model.AccountStore,
	otp *OTP,
	composer model.OTPComposer,
	notifier model.Notifier,
	hasher model.PasswordHasher,
	tokens *TokenService,
	logger *logger.Logger,
	settings AuthSettings,
) *Auth {
	policy := settings.LoginPolicy
	if policy == "" {
		policy = LoginPolicyOTP
	}
	period := settings.TrialPeriod
	if period <= 0 {
		period = model.DefaultTrialPeriod
	}

	return &Auth{
		accounts:    accounts,
		otp:         otp,
		composer:    composer,
		notifier:    notifier,
		hasher:      hasher,
		tokens:      tokens,
		policy:      policy,
		trialPeriod: period,
		now:         time.Now,
		logger:      logger,
	}
}

// RequestOTP generates and emails a code for purpose. SIGNUP requires the email to be
// unused; LOGIN and FORGOT_PASSWORD require an existing account.
func (a *Auth) RequestOTP(ctx context.Context, email string, purpose model.Purpose, userName string) error {
	email = model.NormalizeEmail(email)
	a.logger.Debug("Auth service: otp requested",
		"email", email,
		"purpose", purpose)

	switch purpose {
	case model.PurposeSignup, model.PurposeLogin, model.PurposeForgotPassword:
	default:
		return apierror.NewErrBadRequest(fmt.Sprintf("unsupported otp type %q", purpose))
	}

	exists, err := a.accountExists(ctx, email)
	if err != nil {
		return apierror.NewErrInternalServerError(err)
	}

	switch purpose {
	case model.PurposeSignup:
		if exists {
			a.logger.Info("Auth service: signup otp for taken email",
				"email", email)
			return apierror.NewErrEmailIsTaken(email)
		}
	case model.PurposeLogin, model.PurposeForgotPassword:
		if !exists {
			a.logger.Info("Auth service: otp for unknown account",
				"email", email,
				"purpose", purpose)
			return apierror.NewErrAccountNotFound(email)
		}
	}

	code, err := a.otp.Generate(ctx, email, purpose)
	if err != nil {
		return apierror.NewErrInternalServerError(err)
	}

	msg, err := a.composer.ComposeOTP(purpose, code, userName, a.otp.TTL())
	if err != nil {
		a.logger.Error("Auth service: failed to render otp email",
			"email", email,
			"purpose", purpose,
			"error", err.Error())
		return apierror.NewErrInternalServerError(err)
	}

	if err := a.notifier.Send(ctx, email, msg.Subject, msg.Text, msg.HTML); err != nil {
		a.logger.Error("Auth service: failed to deliver otp",
			"email", email,
			"purpose", purpose,
			"error", err.Error())
		return apierror.NewErrDeliveryFailed(email, err)
	}

	a.logger.Info("Auth service: otp sent",
		"email", email,
		"purpose", purpose)

	return nil
}

// VerifyOTP marks the outstanding code for (email, purpose) as verified.
func (a *Auth) VerifyOTP(ctx context.Context, email, code string, purpose model.Purpose) error {
	email = model.NormalizeEmail(email)

	err := a.otp.Verify(ctx, email, code, purpose)
	switch {
	case err == nil:
		a.logger.Info("Auth service: otp verified",
			"email", email,
			"purpose", purpose)
		return nil
	case errors.Is(err, model.ErrOTPNotFound):
		return apierror.NewErrOTPNotFound()
	case errors.Is(err, model.ErrInvalidCode):
		a.logger.Info("Auth service: invalid otp presented",
			"email", email,
			"purpose", purpose)
		return apierror.NewErrInvalidCode()
	default:
		a.logger.Error("Auth service: failed to verify otp",
			"email", email,
			"purpose", purpose,
			"error", err.Error())
		return apierror.NewErrInternalServerError(err)
	}
}

// Register spends the verified SIGNUP OTP, creates the account and starts a session on w.
func (a *Auth) Register(ctx context.Context, w http.ResponseWriter, params model.SignupParams) (model.Session, error) {
	email := model.NormalizeEmail(params.Email)
	a.logger.Debug("Auth service: starting registration",
		"email", email)

	if err := a.consume(ctx, email, model.PurposeSignup); err != nil {
		return model.Session{}, err
	}

	exists, err := a.accountExists(ctx, email)
	if err != nil {
		return model.Session{}, apierror.NewErrInternalServerError(err)
	}
	if exists {
		a.logger.Info("Auth service: account already exists",
			"email", email)
		return model.Session{}, apierror.NewErrEmailIsTaken(email)
	}

	digest, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return model.Session{}, apierror.NewErrInternalServerError(err)
	}

	role := params.Role
	if role == "" {
		role = model.RoleUser
	}

	now := a.now()
	trial := model.DeriveTrialWindow(role, params.TrialStartDate, params.TrialEndDate, now, a.trialPeriod)

	account, err := a.accounts.Create(ctx, model.Account{
		ID:             uuid.New(),
		UserName:       params.UserName,
		Email:          email,
		PasswordDigest: digest,
		Role:           role,
		PhoneNumber:    params.PhoneNumber,
		TrialStartDate: trial.Start,
		TrialEndDate:   trial.End,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			a.logger.Info("Auth service: concurrent registration lost",
				"email", email)
			return model.Session{}, apierror.NewErrEmailIsTaken(email)
		}
		a.logger.Error("Auth service: failed to create account",
			"email", email,
			"error", err.Error())
		return model.Session{}, apierror.NewErrInternalServerError(err)
	}

	session, err := a.startSession(w, account)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: account registered",
		"email", email,
		"account_id", account.ID)

	return session, nil
}

// Login checks credentials and starts a session on w. Under LoginPolicyOTP the
// verified LOGIN OTP is spent before the password is checked.
func (a *Auth) Login(ctx context.Context, w http.ResponseWriter, email, password string) (model.Session, error) {
	email = model.NormalizeEmail(email)
	a.logger.Debug("Auth service: login attempt",
		"email", email,
		"policy", a.policy)

	if a.policy == LoginPolicyOTP {
		if err := a.consume(ctx, email, model.PurposeLogin); err != nil {
			return model.Session{}, err
		}
	}

	account, err := a.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: login for unknown account",
				"email", email)
			return model.Session{}, apierror.NewErrInvalidCredentials()
		}
		a.logger.Error("Auth service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, apierror.NewErrInternalServerError(err)
	}

	if !a.hasher.Verify(password, account.PasswordDigest) {
		a.logger.Info("Auth service: wrong password",
			"email", email)
		return model.Session{}, apierror.NewErrInvalidCredentials()
	}

	session, err := a.startSession(w, account)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: login succeeded",
		"email", email,
		"account_id", account.ID)

	return session, nil
}

// ResetPassword spends the verified FORGOT_PASSWORD OTP and replaces the password.
func (a *Auth) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = model.NormalizeEmail(email)

	if err := a.consume(ctx, email, model.PurposeForgotPassword); err != nil {
		return err
	}

	digest, err := a.hasher.Hash(newPassword)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return apierror.NewErrInternalServerError(err)
	}

	_, err = a.accounts.UpdateByEmail(ctx, email, model.AccountPatch{PasswordDigest: &digest})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierror.NewErrAccountNotFound(email)
		}
		a.logger.Error("Auth service: failed to update password",
			"email", email,
			"error", err.Error())
		return apierror.NewErrInternalServerError(err)
	}

	a.logger.Info("Auth service: password reset",
		"email", email)

	return nil
}

// Logout clears the session cookie.
func (a *Auth) Logout(w http.ResponseWriter) {
	a.tokens.Clear(w)
}

func (a *Auth) accountExists(ctx context.Context, email string) (bool, error) {
	_, err := a.accounts.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}

	a.logger.Error("Auth service: failed to get account by email",
		"email", email,
		"error", err.Error())
	return false, fmt.Errorf("failed to get account by email: %w", err)
}

func (a *Auth) consume(ctx context.Context, email string, purpose model.Purpose) error {
	err := a.otp.Consume(ctx, email, purpose)
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrNotVerified) {
		a.logger.Info("Auth service: otp not verified",
			"email", email,
			"purpose", purpose)
		return apierror.NewErrNotVerified()
	}

	a.logger.Error("Auth service: failed to consume otp",
		"email", email,
		"purpose", purpose,
		"error", err.Error())
	return apierror.NewErrInternalServerError(err)
}

func (a *Auth) startSession(w http.ResponseWriter, account model.Account) (model.Session, error) {
	token, err := a.tokens.Issue(account.ID, account.Role)
	if err != nil {
		a.logger.Error("Auth service: failed to issue session token",
			"account_id", account.ID,
			"error", err.Error())
		return model.Session{}, apierror.NewErrInternalServerError(err)
	}

	a.tokens.Attach(w, token)

	return model.Session{
		AccessToken: token,
		User:        account.View(),
	}, nil
}

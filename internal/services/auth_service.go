package services

import (
	"context"
	"fmt"
	"time"

	"hellostore_backend/internal/auth"
	"hellostore_backend/internal/captcha"
	"hellostore_backend/internal/email"
	"hellostore_backend/internal/logger"
	"hellostore_backend/internal/models"
	"hellostore_backend/internal/repositories"
	"hellostore_backend/internal/services/dto"
	"hellostore_backend/internal/session"
	"hellostore_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// Tokens are valid for one hour; there is no resend path, an expired
// verification link means registering again.
const (
	VerificationTokenTTL = time.Hour
	ResetTokenTTL        = time.Hour
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) error
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req *dto.LoginRequest) (*session.Data, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	hasher        auth.PasswordHasher
	verifier      captcha.Verifier
	emailProvider email.Provider
	baseURL       string
	now           func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	hasher auth.PasswordHasher,
	verifier captcha.Verifier,
	emailProvider email.Provider,
	baseURL string,
) *AuthServiceImpl {
	if verifier == nil {
		verifier = captcha.NoopVerifier{}
	}
	return &AuthServiceImpl{
		userRepo:      userRepo,
		hasher:        hasher,
		verifier:      verifier,
		emailProvider: emailProvider,
		baseURL:       baseURL,
		now:           time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *AuthServiceImpl) WithClock(now func() time.Time) *AuthServiceImpl {
	s.now = now
	return s
}

// Register creates a new user in the pending-verification state and
// dispatches the verification email.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) error {
	// Bot check runs before any database access, so registration attempts
	// cannot be used to probe which emails exist.
	if err := s.checkCaptcha(ctx, req.CaptchaToken, req.RemoteIP); err != nil {
		return err
	}

	normalized := models.NormalizeEmail(req.Email)

	if _, err := s.userRepo.FindByEmail(normalized); err == nil {
		return apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.InternalError(err)
	}

	if failed := auth.ValidatePassword(req.Password); len(failed) > 0 {
		return apperrors.ErrWeakPassword.WithDetails(failed)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	tokenExp := s.now().Add(VerificationTokenTTL)

	user := &models.User{
		ExternalID:           uuid.NewString(),
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                normalized,
		PasswordHash:         hashedPassword,
		Role:                 models.UserRoleCustomer,
		Status:               models.UserStatusActive,
		IsEmailVerified:      false,
		VerificationToken:    token,
		VerificationTokenExp: &tokenExp,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	// Fire-and-forget: the user record is already persisted and a send
	// failure must not roll it back.
	s.sendVerificationEmail(user.Email, token)

	return nil
}

// VerifyEmail consumes a verification token, moving the user from
// pending-verification to active.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrTokenNotFound
	}

	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.InternalError(err)
	}

	if user.VerificationTokenExp == nil || s.now().After(*user.VerificationTokenExp) {
		return apperrors.ErrTokenExpired
	}

	// Flag flip and token clear happen as one atomic write; a concurrent
	// consume of the same token loses and reads as not-found.
	if err := s.userRepo.ConsumeVerificationToken(user.ID, token); err != nil {
		if apperrors.Is(err, repositories.ErrTokenConsumed) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "email verified", "user_id", user.ID)
	return nil
}

// Login authenticates the user and returns the session snapshot to store.
// Checks run strictly in order existence -> status -> verification ->
// credential; no password comparison happens for unknown emails.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*session.Data, error) {
	if err := s.checkCaptcha(ctx, req.CaptchaToken, req.RemoteIP); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(models.NormalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrAccountInactive
	}

	if !user.IsEmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &session.Data{
		UserID:          user.ID,
		ExternalID:      user.ExternalID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		Role:            user.Role,
		IsEmailVerified: user.IsEmailVerified,
	}, nil
}

// RequestPasswordReset issues a reset token. Deliberately silent when the
// email is unknown, so the form cannot be used to probe for accounts.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, rawEmail string) error {
	user, err := s.userRepo.FindByEmail(models.NormalizeEmail(rawEmail))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.SetResetToken(user.ID, token, s.now().Add(ResetTokenTTL)); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendPasswordResetEmail(user.Email, token)
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperrors.ErrTokenNotFound
	}

	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.InternalError(err)
	}

	if user.ResetTokenExp == nil || s.now().After(*user.ResetTokenExp) {
		return apperrors.ErrResetTokenExpired
	}

	if failed := auth.ValidatePassword(newPassword); len(failed) > 0 {
		return apperrors.ErrWeakPassword.WithDetails(failed)
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.ResetPassword(user.ID, token, hashedPassword); err != nil {
		if apperrors.Is(err, repositories.ErrTokenConsumed) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password reset", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) checkCaptcha(ctx context.Context, token, remoteIP string) error {
	ok, err := s.verifier.Verify(ctx, token, remoteIP)
	if err != nil {
		// Unreachable verifier reads as not-human; the caller sees the same
		// generic outcome as a rejected token.
		return apperrors.ErrCaptchaFailed.WithError(err)
	}
	if !ok {
		return apperrors.ErrCaptchaFailed
	}
	return nil
}

func (s *AuthServiceImpl) sendVerificationEmail(to, token string) {
	if s.emailProvider == nil {
		return
	}

	verifyURL := fmt.Sprintf("%s/users/verify/%s", s.baseURL, token)
	go func() {
		if err := s.emailProvider.SendVerification(to, verifyURL); err != nil {
			logger.Error("failed to send verification email", "error", err, "to", to)
		}
	}()
}

func (s *AuthServiceImpl) sendPasswordResetEmail(to, token string) {
	if s.emailProvider == nil {
		return
	}

	resetURL := fmt.Sprintf("%s/users/password/reset/%s", s.baseURL, token)
	go func() {
		if err := s.emailProvider.SendPasswordReset(to, resetURL); err != nil {
			logger.Error("failed to send password reset email", "error", err, "to", to)
		}
	}()
}

package services

import (
	"fmt"
	"strings"
	"time"

	"billpilot_backend/internal/auth"
	"billpilot_backend/internal/config"
	"billpilot_backend/internal/email"
	"billpilot_backend/internal/logger"
	"billpilot_backend/internal/models"
	"billpilot_backend/internal/repositories"
	"billpilot_backend/internal/services/dto"
	"billpilot_backend/pkg/apperrors"
)

// AuthService orchestrates the account lifecycle: registration, email
// verification, login, refresh-token rotation with reuse detection, logout
// and password reset.
type AuthService interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest, presentedRefreshToken string) (*dto.AuthResponse, string, error)
	RefreshTokens(presentedRefreshToken string) (*dto.AuthResponse, string, error)
	Logout(presentedRefreshToken string) (*models.User, error)
	VerifyEmail(userID, tokenValue string) (alreadyVerified bool, err error)
	ResendVerification(emailAddr string) (*models.User, error)
	RequestPasswordReset(emailAddr string) (*models.User, error)
	ResetPassword(req *dto.ResetPasswordConfirm) (*models.User, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	refreshRepo repositories.RefreshTokenRepository
	verifyRepo  repositories.VerificationTokenRepository
	mailer      email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshRepo repositories.RefreshTokenRepository,
	verifyRepo repositories.VerificationTokenRepository,
	mailer email.Provider,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		verifyRepo:  verifyRepo,
		mailer:      mailer,
	}
}

// Register creates an unverified account and dispatches the verification
// email. Email delivery is best-effort: a dead SMTP server does not undo a
// registration.
func (s *authService) Register(req *dto.RegisterRequest) (*models.User, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        normalizeEmail(req.Email),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashedPassword,
		PhoneNumber:  req.PhoneNumber,
		BusinessName: req.BusinessName,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		Provider:     models.ProviderEmail,
		Active:       true,
	}
	user.SetRoles([]string{models.RoleUser})

	if err := s.userRepo.Create(user); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrEmailTaken):
			return nil, apperrors.ErrEmailAlreadyExists
		case apperrors.Is(err, repositories.ErrUsernameTaken):
			return nil, apperrors.ErrUsernameAlreadyExists
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.issueVerificationToken(user, email.TemplateAccountVerification); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and rotates the session set. A presented cookie
// token is pruned before the fresh token is appended; a presented token that
// no account holds is treated as stolen and clears the whole set.
func (s *authService) Login(req *dto.LoginRequest, presentedRefreshToken string) (*dto.AuthResponse, string, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Same error as a bad password: no account enumeration
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, "", apperrors.ErrUserNotVerified
	}

	if !user.Active {
		return nil, "", apperrors.ErrUserDeactivated
	}

	if presentedRefreshToken != "" {
		if err := s.refreshRepo.DeleteByToken(presentedRefreshToken); err != nil {
			if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
				// The cookie held a token no account knows about:
				// assume the set is compromised and start clean.
				if err := s.refreshRepo.DeleteByUserID(user.ID); err != nil {
					return nil, "", apperrors.InternalError(err)
				}
			} else {
				return nil, "", apperrors.InternalError(err)
			}
		}
	}

	return s.issueSession(user)
}

// RefreshTokens consumes a presented refresh token and, when it checks out,
// issues a fresh access/refresh pair. A token held by no account is treated
// as reuse of a revoked token: the implicated account (identified from the
// token itself) loses every session it has.
func (s *authService) RefreshTokens(presentedRefreshToken string) (*dto.AuthResponse, string, error) {
	user, err := s.refreshRepo.FindUserByToken(presentedRefreshToken)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, "", apperrors.InternalError(err)
		}

		// Reuse containment: decode without store membership to find the
		// implicated account, then force a global logout on it.
		if claims, derr := auth.DecodeUnverified(presentedRefreshToken); derr == nil {
			if cerr := s.refreshRepo.DeleteByUserID(claims.UserID); cerr != nil {
				logger.Error("failed to clear session set after token reuse", "error", cerr)
			} else {
				logger.Warn("refresh token reuse detected, all sessions revoked", "user_id", claims.UserID)
			}
		}
		return nil, "", apperrors.ErrRefreshTokenRejected
	}

	// Rotate out: the presented token is consumed no matter what comes next.
	if err := s.refreshRepo.DeleteByToken(presentedRefreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			// A concurrent request consumed it first
			return nil, "", apperrors.ErrRefreshTokenRejected
		}
		return nil, "", apperrors.InternalError(err)
	}

	claims, err := auth.ParseToken(presentedRefreshToken)
	if err != nil {
		// Expired or forged; the prune above already stuck
		return nil, "", apperrors.ErrRefreshTokenRejected
	}

	if claims.UserID != user.ID {
		// The stored row and the token payload disagree
		return nil, "", apperrors.ErrRefreshTokenRejected
	}

	return s.issueSession(user)
}

// Logout removes the presented token from its holder's set. A cookie nobody
// holds is not an error: the caller just gets its cookie cleared.
func (s *authService) Logout(presentedRefreshToken string) (*models.User, error) {
	user, err := s.refreshRepo.FindUserByToken(presentedRefreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.refreshRepo.DeleteByToken(presentedRefreshToken); err != nil &&
		!apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return nil, apperrors.InternalError(err)
	}

	return user, nil
}

// VerifyEmail consumes a verification token. Repeated verification is an
// informational no-op; the token is deleted on success so it cannot be
// replayed.
func (s *authService) VerifyEmail(userID, tokenValue string) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return false, apperrors.NewNotFoundError("auth", "We were unable to find a user for this token")
		}
		return false, apperrors.InternalError(err)
	}

	if user.IsEmailVerified {
		return true, nil
	}

	token, err := s.verifyRepo.FindByUserAndToken(user.ID, tokenValue)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationTokenNotFound) {
			return false, apperrors.ErrInvalidVerificationToken
		}
		return false, apperrors.InternalError(err)
	}

	if s.tokenExpired(token) {
		_ = s.verifyRepo.DeleteByUser(user.ID)
		return false, apperrors.ErrExpiredVerificationToken
	}

	if err := s.userRepo.VerifyEmail(user.ID); err != nil {
		return false, apperrors.InternalError(err)
	}

	s.sendAsync(func() error {
		link := fmt.Sprintf("%s/login", config.GetConfig().DomainURL)
		return s.mailer.SendWelcome(user.Email, user.FirstName, link)
	}, "welcome email", user.Email)

	if err := s.verifyRepo.DeleteByUser(user.ID); err != nil {
		logger.Error("failed to delete consumed verification token", "error", err, "user_id", user.ID)
	}

	return false, nil
}

// ResendVerification replaces the user's verification token and resends the
// verification email.
func (s *authService) ResendVerification(emailAddr string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(emailAddr))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("auth", "We were unable to find a user with that email address")
		}
		return nil, apperrors.InternalError(err)
	}

	if user.IsEmailVerified {
		return nil, apperrors.ErrAlreadyVerified
	}

	if err := s.issueVerificationToken(user, email.TemplateAccountVerification); err != nil {
		return nil, err
	}

	return user, nil
}

// RequestPasswordReset replaces the user's token and emails the reset link.
func (s *authService) RequestPasswordReset(emailAddr string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(emailAddr))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("auth", "That email is not associated with any account")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.issueVerificationToken(user, email.TemplateResetRequest); err != nil {
		return nil, err
	}

	return user, nil
}

// ResetPassword consumes a reset token and replaces the password. Every
// refresh token the user holds is revoked so stolen sessions die with the
// old password.
func (s *authService) ResetPassword(req *dto.ResetPasswordConfirm) (*models.User, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}
	if len(req.Password) < 8 {
		return nil, apperrors.ErrPasswordTooShort
	}

	token, err := s.verifyRepo.FindByUserAndToken(req.UserID, req.EmailToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationTokenNotFound) {
			return nil, apperrors.ErrExpiredVerificationToken
		}
		return nil, apperrors.InternalError(err)
	}

	if s.tokenExpired(token) {
		_ = s.verifyRepo.DeleteByUser(req.UserID)
		return nil, apperrors.ErrExpiredVerificationToken
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrExpiredVerificationToken
		}
		return nil, apperrors.InternalError(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, hashedPassword, time.Now()); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.verifyRepo.DeleteByUser(user.ID); err != nil {
		logger.Error("failed to delete consumed reset token", "error", err, "user_id", user.ID)
	}

	if err := s.refreshRepo.DeleteByUserID(user.ID); err != nil {
		logger.Error("failed to revoke sessions after password reset", "error", err, "user_id", user.ID)
	}

	s.sendAsync(func() error {
		return s.mailer.SendResetConfirmation(user.Email, user.FirstName)
	}, "reset confirmation email", user.Email)

	return user, nil
}

// --- helpers ---

// normalizeEmail lowercases the address so the unique email identity is
// case-insensitive: one mailbox, one account, however the user types it.
func normalizeEmail(emailAddr string) string {
	return strings.ToLower(strings.TrimSpace(emailAddr))
}

// issueSession mints a fresh access/refresh pair, appends the refresh token
// to the user's stored set and builds the response body.
func (s *authService) issueSession(user *models.User) (*dto.AuthResponse, string, error) {
	accessToken, err := auth.GenerateAccessToken(user.ID, user.RoleList())
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	ttl := time.Duration(config.GetConfig().JWT.RefreshTTLHours) * time.Hour
	if err := s.refreshRepo.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(ttl),
	}); err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Success:     true,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Username:    user.Username,
		Provider:    user.Provider,
		Avatar:      user.Avatar,
		AccessToken: accessToken,
	}, refreshToken, nil
}

// issueVerificationToken replaces the user's single live token and sends the
// matching templated email.
func (s *authService) issueVerificationToken(user *models.User, templateName string) error {
	tokenValue, err := auth.GenerateSecureToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.verifyRepo.Replace(&models.VerificationToken{
		UserID: user.ID,
		Token:  tokenValue,
	}); err != nil {
		return apperrors.InternalError(err)
	}

	domain := config.GetConfig().DomainURL
	switch templateName {
	case email.TemplateResetRequest:
		link := fmt.Sprintf("%s/auth/reset_password?emailToken=%s&userId=%s", domain, tokenValue, user.ID)
		s.sendAsync(func() error {
			return s.mailer.SendPasswordReset(user.Email, user.FirstName, link)
		}, "password reset email", user.Email)
	default:
		link := fmt.Sprintf("%s/api/v1/auth/verify/%s/%s", domain, tokenValue, user.ID)
		s.sendAsync(func() error {
			return s.mailer.SendVerification(user.Email, user.FirstName, link)
		}, "verification email", user.Email)
	}

	return nil
}

// sendAsync dispatches an email off the request path. Failures are logged
// and swallowed; no account operation depends on SMTP being up.
func (s *authService) sendAsync(send func() error, what, to string) {
	if s.mailer == nil {
		return
	}

	go func() {
		if err := send(); err != nil {
			logger.Error("failed to send "+what, "error", err, "to", to)
		}
	}()
}

// tokenExpired enforces the verification window at consumption time
func (s *authService) tokenExpired(token *models.VerificationToken) bool {
	window := time.Duration(config.GetConfig().JWT.VerifyTokenMinutes) * time.Minute
	return time.Since(token.CreatedAt) > window
}

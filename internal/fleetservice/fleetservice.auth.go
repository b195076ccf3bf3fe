// FilePath: internal/fleetservice/fleetservice.auth.go
package fleetservice

import (
	"context"
	"strings"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

// TokenResponse is returned by Login and carries the signed bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new user account. Duplicate usernames or emails are
// rejected with a conflict error.
func (s *FleetService) Register(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return nil, errors.NewValidationError("username, email and password are required", nil)
	}
	if !strings.Contains(reg.Email, "@") {
		return nil, errors.NewValidationError("email is not valid", nil)
	}

	hash, err := s.Credentials.HashPassword(reg.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           nuts.NID("usr", 12),
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[AuthService] Registered user %s (%s)", user.Username, user.ID)
	return user, nil
}

// Login verifies the credentials and issues a bearer token with the
// username as subject.
func (s *FleetService) Login(ctx context.Context, login *models.UserLogin) (*TokenResponse, error) {
	user, err := s.Users.GetByUsername(ctx, login.Username)
	if err != nil {
		// Unknown user and wrong password produce the same rejection.
		return nil, errors.NewAuthError("invalid credentials", nil)
	}
	if !s.Credentials.CheckPassword(login.Password, user.PasswordHash) {
		return nil, errors.NewAuthError("invalid credentials", nil)
	}

	token, err := s.Tokens.Issue(user.Username)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token", err)
	}

	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// ForgotPassword starts the reset flow for a known email. The token is
// delivered out-of-band; delivery is fire-and-forget and never fails the
// request.
func (s *FleetService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.ResetTokens.Issue(ctx, user.Email, s.resetTokenTTL)
	if err != nil {
		return err
	}

	go s.deliverResetToken(user.Email, token)
	return nil
}

// deliverResetToken stands in for the mail service. It logs instead of
// sending; real delivery is out of scope.
func (s *FleetService) deliverResetToken(email, token string) {
	nuts.L.Infof("[AuthService] Password reset token issued for %s: %s", email, token)
}

// ResetPassword redeems a pending token exactly once and replaces the
// account's password hash.
func (s *FleetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return errors.NewValidationError("new password is required", nil)
	}

	email, err := s.ResetTokens.Consume(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		// Token outlived the account it was issued for.
		return errors.NewResetTokenError("invalid or expired reset token", err)
	}

	hash, err := s.Credentials.HashPassword(newPassword)
	if err != nil {
		return errors.NewInternalError("failed to hash password", err)
	}

	if err := s.Users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	nuts.L.Infof("[AuthService] Password reset completed for user %s", user.ID)
	return nil
}

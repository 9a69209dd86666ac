// Package services contains server-side business logic. This file implements
// UserService, which handles registration and sign-in and mints session
// tokens on success.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avolkov/storefront/internal/common"
	"github.com/avolkov/storefront/internal/logging"
	"github.com/avolkov/storefront/internal/server/auth"
	"github.com/avolkov/storefront/internal/server/models"
	"github.com/avolkov/storefront/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
// - Register: create users and sign them in
// - SignIn: verify credentials and mint a session token
type UserService struct {
	users    users.Repository
	verifier *auth.Verifier
	issuer   *auth.Issuer
	hasher   auth.PasswordHasher

	minPasswordLen int
	logger         logging.Logger
}

func NewUserService(repo users.Repository, verifier *auth.Verifier, issuer *auth.Issuer, hasher auth.PasswordHasher, minPasswordLen int, logger logging.Logger) *UserService {
	return &UserService{
		users:          repo,
		verifier:       verifier,
		issuer:         issuer,
		hasher:         hasher,
		minPasswordLen: minPasswordLen,
		logger:         logger.With("component", "users"),
	}
}

// SignIn verifies the credential and returns a session token. Every
// credential failure is common.ErrInvalidCredentials; a store fault keeps
// its common.ErrStoreUnavailable identity so callers can retry.
func (s *UserService) SignIn(ctx context.Context, email, password string) (string, error) {
	result, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return "", err
	}
	if !result.Authenticated {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(result.UserID)
	if err != nil {
		return "", fmt.Errorf("minting session token: %w", err)
	}
	return token, nil
}

// Register creates a user and returns it together with a session token, so
// a fresh registration is immediately signed in. A duplicate email comes
// back as common.ErrEmailTaken; handlers must not leak that distinction to
// the network.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || !auth.ValidCredentialShape(email, password, s.minPasswordLen) {
		return nil, "", fmt.Errorf("%w: registration input", common.ErrValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, "", common.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("minting session token: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, token, nil
}

package service

import (
	"context"
	"fmt"

	"emotiguide/internal/auth"
	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/model"
	"emotiguide/internal/session"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateSessionToken(profile, userID string) (string, error)
}

// SessionResolver returns the session store of a profile.
type SessionResolver interface {
	Get(ctx context.Context, profile string) (*session.Store, error)
}

// AuthService handles the mock login flow and token checks.
type AuthService interface {
	Login(ctx context.Context, profile string, cmd session.LoginCommand) (token string, user *model.User, err error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Authorize(ctx context.Context, claims *auth.Claims) (*session.Store, error)
}

type authService struct {
	sessions SessionResolver
	tokens   TokenIssuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(sessions SessionResolver, tokens TokenIssuer) AuthService {
	return &authService{
		sessions: sessions,
		tokens:   tokens,
	}
}

// Login fabricates a user in the profile's session store and issues a token for it.
// Credentials are validated for shape only.
func (s *authService) Login(ctx context.Context, profile string, cmd session.LoginCommand) (string, *model.User, error) {
	store, err := s.sessions.Get(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	user, err := store.Login(ctx, cmd)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.GenerateSessionToken(store.Profile(), user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, user, nil
}

// Logout ends the session the token belongs to.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	store, err := s.Authorize(ctx, claims)
	if err != nil {
		return err
	}
	return store.Logout(ctx)
}

// Authorize returns the store of the token's profile if the token's user is
// still that profile's current user.
func (s *authService) Authorize(ctx context.Context, claims *auth.Claims) (*session.Store, error) {
	if claims == nil {
		return nil, apperrors.ErrNotLoggedIn
	}
	store, err := s.sessions.Get(ctx, claims.Profile)
	if err != nil {
		return nil, err
	}
	if store.SessionID() != claims.UserID() {
		return nil, apperrors.ErrTokenRevoked
	}
	return store, nil
}

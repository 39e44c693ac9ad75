package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emotiguide/internal/auth"
	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/kv"
	"emotiguide/internal/session"
)

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateSessionToken(profile, userID string) (string, error) {
	args := m.Called(profile, userID)
	return args.String(0), args.Error(1)
}

func claimsFor(profile, userID string) *auth.Claims {
	return &auth.Claims{Profile: profile, RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		profile       string
		cmd           session.LoginCommand
		mockSetup     func(*MockTokenIssuer)
		expectedError error
		expectToken   bool
	}{
		{
			name:    "successful login",
			profile: "kiosk",
			cmd:     session.LoginCommand{Username: "akash", Password: "secret"},
			mockSetup: func(m *MockTokenIssuer) {
				m.On("GenerateSessionToken", "kiosk", mock.AnythingOfType("string")).Return("signed-token", nil)
			},
			expectToken: true,
		},
		{
			name:          "missing password",
			profile:       "kiosk",
			cmd:           session.LoginCommand{Username: "akash"},
			mockSetup:     func(m *MockTokenIssuer) {},
			expectedError: apperrors.ErrRequired,
		},
		{
			name:          "invalid profile",
			profile:       "bad profile",
			cmd:           session.LoginCommand{Password: "secret"},
			mockSetup:     func(m *MockTokenIssuer) {},
			expectedError: apperrors.ErrInvalidProfile,
		},
		{
			name:    "token signing fails",
			profile: "kiosk",
			cmd:     session.LoginCommand{Password: "secret"},
			mockSetup: func(m *MockTokenIssuer) {
				m.On("GenerateSessionToken", "kiosk", mock.AnythingOfType("string")).Return("", errors.New("sign failed"))
			},
			expectedError: errors.New("generate session token: sign failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := session.NewRegistry(kv.NewMemory(), session.Options{})
			defer registry.Close()
			mockTokens := new(MockTokenIssuer)
			tt.mockSetup(mockTokens)

			service := NewAuthService(registry, mockTokens)
			token, user, err := service.Login(context.Background(), tt.profile, tt.cmd)

			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(err, tt.expectedError) {
					assert.ErrorIs(t, err, tt.expectedError)
				} else {
					assert.EqualError(t, err, tt.expectedError.Error())
				}
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "signed-token", token)
				require.NotNil(t, user)
				assert.Equal(t, "akash", user.Username)
			}

			mockTokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authorize(t *testing.T) {
	ctx := context.Background()
	registry := session.NewRegistry(kv.NewMemory(), session.Options{})
	defer registry.Close()
	mockTokens := new(MockTokenIssuer)
	mockTokens.On("GenerateSessionToken", "kiosk", mock.AnythingOfType("string")).Return("t", nil)
	service := NewAuthService(registry, mockTokens)

	_, first, err := service.Login(ctx, "kiosk", session.LoginCommand{Password: "x"})
	require.NoError(t, err)

	store, err := service.Authorize(ctx, claimsFor("kiosk", first.ID))
	require.NoError(t, err)
	assert.Equal(t, first.ID, store.SessionID())

	_, _, err = service.Login(ctx, "kiosk", session.LoginCommand{Password: "x"})
	require.NoError(t, err)

	_, err = service.Authorize(ctx, claimsFor("kiosk", first.ID))
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked, "a newer login replaces the user")

	_, err = service.Authorize(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	registry := session.NewRegistry(kv.NewMemory(), session.Options{})
	defer registry.Close()
	mockTokens := new(MockTokenIssuer)
	mockTokens.On("GenerateSessionToken", "default", mock.AnythingOfType("string")).Return("t", nil)
	service := NewAuthService(registry, mockTokens)

	_, user, err := service.Login(ctx, "default", session.LoginCommand{Password: "x"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, claimsFor("default", user.ID)))

	store, err := registry.Get(ctx, "default")
	require.NoError(t, err)
	assert.Nil(t, store.User())

	err = service.Logout(ctx, claimsFor("default", user.ID))
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked, "a token cannot be reused after logout")
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/config"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret-key-that-is-long-enough-123456",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		GoogleOAuth: config.GoogleOAuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost:8090/api/auth/google/callback",
		},
	}
}

func TestNewAuthService_RejectsShortSecret(t *testing.T) {
	cfg := authTestConfig()
	cfg.JWT.SecretKey = "too-short"

	svc, err := NewAuthService(new(MockUserRepository), cfg)

	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestCreateAndValidateJWT(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	user := &domain.User{ID: "user1", Email: "test@example.com"}

	token, err := svc.CreateJWT(context.Background(), user, 15*time.Minute, "access")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateJWT_RejectsExpiredToken(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	user := &domain.User{ID: "user1"}
	token, err := svc.CreateJWT(context.Background(), user, -time.Minute, "access")
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestValidateJWT_RejectsGarbage(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), "not.a.token")
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	user := &domain.User{ID: "user1"}
	accessToken, err := svc.CreateJWT(context.Background(), user, 15*time.Minute, "access")
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), accessToken)
	assert.Error(t, err)
}

func TestRefreshToken_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, err := NewAuthService(userRepo, authTestConfig())
	require.NoError(t, err)

	user := &domain.User{ID: "user1", Email: "test@example.com"}
	userRepo.On("GetUserByID", mock.Anything, "user1").Return(user, nil)

	refreshToken, err := svc.CreateJWT(context.Background(), user, time.Hour, "refresh")
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	claims, err := svc.ValidateJWT(context.Background(), newAccess)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
}

func TestHandleGoogleCallback_RejectsStateMismatch(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	_, _, _, err = svc.HandleGoogleCallback(context.Background(), "code", "state-a", "state-b")
	assert.ErrorIs(t, err, ErrInvalidAuthState)
}

func TestGetGoogleLoginURL(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	url := svc.GetGoogleLoginURL("state123")
	assert.Contains(t, url, "state=state123")
	assert.Contains(t, url, "client-id")
}

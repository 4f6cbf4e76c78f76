package services

import (
	"context"
	"testing"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test_secret",
			RefreshSecret:    "test_refresh_secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(
		repositories.NewMemberRepository(db),
		repositories.NewAgentRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
}

func TestRegisterMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	input := &RegisterMemberInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "password123",
	}

	resp, err := svc.RegisterMember(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeMember, resp.UserType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Passwords are never stored in the clear.
	var stored models.Member
	require.NoError(t, db.Where("email = ?", input.Email).First(&stored).Error)
	assert.NotEqual(t, input.Password, stored.Password)

	_, err = svc.RegisterMember(ctx, input)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	_, err := svc.RegisterMember(ctx, &RegisterMemberInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.LoginMember(ctx, &LoginInput{Email: "jane@example.com", Password: "password123"})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", claims.Email)
		assert.Equal(t, models.UserTypeMember, claims.UserType)
		assert.Equal(t, "MEMBER", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.LoginMember(ctx, &LoginInput{Email: "jane@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.LoginMember(ctx, &LoginInput{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Member{}).Where("email = ?", "jane@example.com").
			Update("is_active", false).Error)
		_, err := svc.LoginMember(ctx, &LoginInput{Email: "jane@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestRefreshToken_Rotation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	registered, err := svc.RegisterAgent(ctx, &RegisterAgentInput{
		AgencyName: "Global Study Partners",
		Email:      "agency@example.com",
		Password:   "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeAgent, refreshed.UserType)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old token was rotated out and cannot be replayed.
	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The new token still works.
	_, err = svc.RefreshToken(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	registered, err := svc.RegisterMember(ctx, &RegisterMemberInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.RefreshToken))

	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutAll(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	registered, err := svc.RegisterMember(ctx, &RegisterMemberInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	login, err := svc.LoginMember(ctx, &LoginInput{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	var member models.Member
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&member).Error)
	require.NoError(t, svc.LogoutAll(ctx, member.ID, models.UserTypeMember))

	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_BadToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

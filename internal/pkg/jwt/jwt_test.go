package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "member", "jane@example.com", "MEMBER", "secret", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "member", claims.UserType)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "MEMBER", claims.Role)
	assert.Equal(t, "edumigrate", claims.Issuer)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, "member", "jane@example.com", "MEMBER", "secret", 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(42, "member", "jane@example.com", "MEMBER", "secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "agent", "token-id-1", "refresh-secret", 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh-secret")
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "agent", claims.UserType)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func TestTokenSecretsAreNotInterchangeable(t *testing.T) {
	access, err := GenerateAccessToken(1, "member", "a@b.c", "MEMBER", "secret", 15)
	require.NoError(t, err)

	// An access token is not a valid refresh token even with the right secret shape.
	_, err = ValidateRefreshToken(access, "refresh-secret")
	assert.Error(t, err)
}

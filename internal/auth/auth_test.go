package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/fadyamr909/EcommApp/configs"
	"github.com/fadyamr909/EcommApp/internal/auth"
	"github.com/fadyamr909/EcommApp/internal/models"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     "test-secret-that-is-long-enough-0000",
		Issuer:     "EcommApp",
		Audience:   "EcommApp",
		TTLMinutes: 30,
	}
}

func TestHashPassword(t *testing.T) {
	// SHA-256("password"), base64.
	assert.Equal(t, "XohImNooBHFR0OVvjcYpJ3NgPQ1qq73WKhHvch0VQtg=", auth.HashPassword("password"))
	assert.Equal(t, auth.HashPassword("secret"), auth.HashPassword("secret"))
	assert.NotEqual(t, auth.HashPassword("secret"), auth.HashPassword("Secret"))
}

func TestVerifyPassword(t *testing.T) {
	hash := auth.HashPassword("hunter22")

	assert.True(t, auth.VerifyPassword("hunter22", hash))
	assert.False(t, auth.VerifyPassword("hunter23", hash))
	assert.False(t, auth.VerifyPassword("", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	auth.Init(testJWTConfig())

	user := models.User{ID: 42, Username: "amr"}
	token, err := auth.GenerateToken(&user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), principal.UserID)
	assert.Equal(t, "amr", principal.Username)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth.Init(testJWTConfig())

	_, err := auth.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.TTLMinutes = -1
	auth.Init(cfg)

	user := models.User{ID: 7, Username: "ghost"}
	token, err := auth.GenerateToken(&user)
	require.NoError(t, err)

	auth.Init(testJWTConfig())
	_, err = auth.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	auth.Init(testJWTConfig())

	user := models.User{ID: 7, Username: "ghost"}
	token, err := auth.GenerateToken(&user)
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "a-completely-different-secret-value-11"
	auth.Init(other)

	_, err = auth.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	auth.Init(testJWTConfig())
}

package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken("ada@example.com", secret, false, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAndGetClaims(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims["email"])
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, false, claims["is_admin"])
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("ada@example.com", "right-secret", true, 1)
	require.NoError(t, err)

	_, err = ValidateAndGetClaims(token, "wrong-secret")
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := ValidateAndGetClaims("not.a.token", "secret")
	assert.Error(t, err)
}

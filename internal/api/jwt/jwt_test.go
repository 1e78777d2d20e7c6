package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("0x7f268357A8c2552623316e2562D90e642bB538E5", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	address, role, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "0x7f268357A8c2552623316e2562D90e642bB538E5", address)
	assert.Equal(t, RoleAdmin, role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("0x7f268357A8c2552623316e2562D90e642bB538E5", RoleUser)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, _, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, _, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

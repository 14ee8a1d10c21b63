package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, refresh, err := GenerateTokens("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	sub, err := ValidateToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)

	sub, err = ValidateToken(refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestTokenTypeEnforced(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, refresh, err := GenerateTokens("user-123")
	require.NoError(t, err)

	_, err = ValidateToken(refresh, TokenTypeAccess)
	assert.Error(t, err, "refresh token must not pass as access token")
	_, err = ValidateToken(access, TokenTypeRefresh)
	assert.Error(t, err)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	access, _, err := GenerateTokens("user-123")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = ValidateToken(access, TokenTypeAccess)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ValidateToken("not-a-token", TokenTypeAccess)
	assert.Error(t, err)
}

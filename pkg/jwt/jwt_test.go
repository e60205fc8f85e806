package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15)

	token, err := m.GenerateAccessToken(42, []string{"USER", "ADMIN"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, []string{"USER", "ADMIN"}, claims.Roles)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 15).GenerateAccessToken(1, nil)
	require.NoError(t, err)

	_, err = NewManager("secret-b", 15).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	token, err := NewManager("test-secret", -1).GenerateAccessToken(1, nil)
	require.NoError(t, err)

	_, err = NewManager("test-secret", -1).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret", 15).ValidateToken("not.a.token")
	assert.Error(t, err)
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewace/interviewace/internal/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret")

	raw, err := m.Issue("user-1", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	raw, err := NewTokenManager("secret-a").Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Parse(raw)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestTokenGarbageRejected(t *testing.T) {
	_, err := NewTokenManager("test-secret").Parse("not.a.token")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

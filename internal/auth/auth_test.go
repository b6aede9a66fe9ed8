package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := SignToken(testSecret, 42, "alice", true, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
	assert.True(t, claims.IsAdmin)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := SignToken(testSecret, 1, "bob", false, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken([]byte("a-different-secret"), token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := SignToken(testSecret, 1, "bob", false, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	require.NoError(t, CheckPassword("Sup3rSecret", hash))

	err = CheckPassword("WrongPassword1", hash)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

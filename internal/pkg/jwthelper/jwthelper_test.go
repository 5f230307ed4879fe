package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, "somchai", "test-agent", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, "somchai", claims.Username)
	assert.Equal(t, "test-agent", claims.UserAgent)
}

func TestParseTokenWrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("key-one"), "somchai", "", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, "somchai", "", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(key, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken([]byte("key"), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

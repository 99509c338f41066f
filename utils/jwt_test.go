package utils

import (
	"testing"
	"time"

	"bookflow/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateSessionToken("sess-1", "client", time.Hour)
	require.NoError(t, err)

	id, err := ExtractSessionIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
}

func TestSessionToken_Expired(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateSessionToken("sess-1", "client", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractSessionIDFromToken(token)
	assert.Error(t, err)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateSessionToken("sess-1", "client", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()

	_, err = ExtractSessionIDFromToken(token)
	assert.Error(t, err)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := ExtractSessionIDFromToken("not-a-token")
	assert.Error(t, err)
}

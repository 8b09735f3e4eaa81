package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	jwtSecret = []byte("test-secret")
	cfg = Config{TokenTTL: time.Hour}

	token, err := issueToken(42)
	require.NoError(t, err)

	uid, err := verifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)
}

func TestExpiredTokenRejected(t *testing.T) {
	jwtSecret = []byte("test-secret")
	cfg = Config{TokenTTL: -time.Minute}

	token, err := issueToken(42)
	require.NoError(t, err)

	_, err = verifyToken(token)
	assert.Error(t, err)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	cfg = Config{TokenTTL: time.Hour}
	jwtSecret = []byte("first-secret")
	token, err := issueToken(42)
	require.NoError(t, err)

	jwtSecret = []byte("second-secret")
	_, err = verifyToken(token)
	assert.Error(t, err)
}

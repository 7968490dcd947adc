package shim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(2, "super-secret", time.Hour)
	require.NoError(t, err)

	seat, err := ParseToken(tok, "super-secret")
	require.NoError(t, err)
	assert.Equal(t, 2, seat)

	_, err = ParseToken(tok, "wrong-secret")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tok, err := GenerateToken(0, "s", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok, "s")
	assert.Error(t, err)
}

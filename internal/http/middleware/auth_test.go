package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("sup3rsecret")
	assert.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", hashed)

	assert.True(t, CheckPassword(hashed, "sup3rsecret"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(42, "test-secret")
	assert.NoError(t, err)

	userID, expiry, err := parseToken(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.WithinDuration(t, time.Now().Add(tokenLifetime), expiry, time.Minute)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "test-secret")
	assert.NoError(t, err)

	_, _, err = parseToken(token, "other-secret")
	assert.Error(t, err)

	_, _, err = parseToken("not-a-token", "test-secret")
	assert.Error(t, err)
}

package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	token, sessionID, err := auth.GenerateSessionToken(42, "mabel@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, sessionID)

	claims, err := auth.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "mabel@example.com", claims.Email)
	assert.Equal(t, sessionID, claims.SessionID)
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := SetupAuth("secret-a").GenerateSessionToken(42, "mabel@example.com")
	require.NoError(t, err)

	_, err = SetupAuth("secret-b").VerifySessionToken(token)
	assert.Error(t, err)
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	_, err := auth.VerifySessionToken("")
	assert.Error(t, err)

	_, err = auth.VerifySessionToken("not.a.token")
	assert.Error(t, err)
}

func TestGenerateSessionTokenRequiresInputs(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	_, _, err := auth.GenerateSessionToken(0, "mabel@example.com")
	assert.Error(t, err)

	_, _, err = auth.GenerateSessionToken(42, "")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	hash, err := auth.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, auth.VerifyPassword("correct horse battery", hash))
	assert.Error(t, auth.VerifyPassword("wrong password", hash))
}

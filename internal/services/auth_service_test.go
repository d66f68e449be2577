package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_VerifyPassword(t *testing.T) {
	auth, err := NewAuthService("s3cret", "salt")
	require.NoError(t, err)

	assert.NoError(t, auth.VerifyPassword("s3cret"))
	assert.ErrorIs(t, auth.VerifyPassword("wrong"), ErrInvalidPassword)
	assert.ErrorIs(t, auth.VerifyPassword(""), ErrInvalidPassword)
}

func TestAuthService_Session(t *testing.T) {
	auth, err := NewAuthService("s3cret", "salt")
	require.NoError(t, err)

	token, err := auth.IssueSession()
	require.NoError(t, err)
	assert.True(t, auth.IsAdmin(token))

	assert.False(t, auth.IsAdmin(""))
	assert.False(t, auth.IsAdmin(token+"x"))
	assert.False(t, auth.IsAdmin("not-a-session"))
}

func TestAuthService_SessionBoundToKey(t *testing.T) {
	first, err := NewAuthService("s3cret", "salt")
	require.NoError(t, err)
	token, err := first.IssueSession()
	require.NoError(t, err)

	rotatedSecret, err := NewAuthService("s3cret", "pepper")
	require.NoError(t, err)
	assert.False(t, rotatedSecret.IsAdmin(token))

	rotatedPassword, err := NewAuthService("changed", "salt")
	require.NoError(t, err)
	assert.False(t, rotatedPassword.IsAdmin(token))
}

func TestAuthService_NotConfigured(t *testing.T) {
	auth, err := NewAuthService("", "salt")
	require.NoError(t, err)

	assert.ErrorIs(t, auth.VerifyPassword("anything"), ErrAdminNotConfigured)
	_, err = auth.IssueSession()
	assert.ErrorIs(t, err, ErrAdminNotConfigured)

	configured, err := NewAuthService("s3cret", "salt")
	require.NoError(t, err)
	token, err := configured.IssueSession()
	require.NoError(t, err)
	assert.False(t, auth.IsAdmin(token))
}

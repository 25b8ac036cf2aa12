package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodiehub/models"
)

func TestTokenRoundTrip(t *testing.T) {
	maker := NewTokenMaker("secret", time.Hour)

	token, err := maker.GenerateToken("user-1", models.RoleCustomer)
	require.NoError(t, err)

	identity, err := maker.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, models.RoleCustomer, identity.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	maker := NewTokenMaker("secret", -time.Minute)

	token, err := maker.GenerateToken("user-1", models.RoleCustomer)
	require.NoError(t, err)

	_, err = maker.ValidateToken(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestForgedTokenRejected(t *testing.T) {
	maker := NewTokenMaker("secret", time.Hour)
	other := NewTokenMaker("other-secret", time.Hour)

	token, err := other.GenerateToken("user-1", models.RoleAdmin)
	require.NoError(t, err)

	_, err = maker.ValidateToken(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestMalformedTokenRejected(t *testing.T) {
	maker := NewTokenMaker("secret", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := maker.ValidateToken(token)
		assert.ErrorIs(t, err, models.ErrUnauthorized, "token %q", token)
	}
}

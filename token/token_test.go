package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusmart/commerce-api/models"
)

const secret = "test-secret"

func TestIssueAndParse(t *testing.T) {
	signed, err := Issue(secret, "user-1", models.RoleUser, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Parse(secret, signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, string(models.RoleUser), claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := Issue(secret, "user-1", models.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = Parse("other-secret", signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(secret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseReportsExpiry(t *testing.T) {
	signed, err := Issue(secret, "user-1", models.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(secret, signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestGuestTokensCarryRole(t *testing.T) {
	signed, err := Issue(secret, "guest_abc", models.RoleGuest, 24*time.Hour)
	require.NoError(t, err)

	claims, err := Parse(secret, signed)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleGuest), claims.Role)
}

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketar/ticketar/app/models"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	user := &models.User{ID: 7, Name: "Operador", Role: models.ROLE_OPERATOR}

	signed, err := Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "Operador", claims.Name)
	assert.Equal(t, models.ROLE_OPERATOR, claims.Role)
	assert.False(t, claims.IsAdmin())

	// The middleware passes the raw Authorization header through.
	claims, err = Validate("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminClaims(t *testing.T) {
	admin := &models.User{ID: 1, Name: "Admin", Role: models.ROLE_ADMIN}
	signed, err := Generate(admin)
	require.NoError(t, err)

	claims, err := Validate(signed)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

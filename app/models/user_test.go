package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	user, err := CreateUser("Operador", "operador@ticketar.com", "operador123", "")
	require.NoError(t, err)

	assert.Equal(t, ROLE_OPERATOR, user.Role)
	assert.NotEqual(t, "operador123", user.Password)
	assert.True(t, CheckPasswordHash("operador123", user.Password))
	assert.False(t, CheckPasswordHash("wrong", user.Password))
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("Ad", "not-an-email", "123", "")
	assert.Error(t, err)

	_, err = CreateUser("Admin", "admin@ticketar.com", "admin123", "SUPERUSER")
	assert.Error(t, err)
}

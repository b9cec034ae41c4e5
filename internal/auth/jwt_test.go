package auth

import (
	"testing"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-1", models.RoleCSR)
	require.NoError(t, err)

	userID, role, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, models.RoleCSR, role)
}

func TestValidateToken_WrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "key-a")
	token, err := GenerateToken("user-1", models.RoleCustomer)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "key-b")
	_, _, err = ValidateToken(token)
	require.Error(t, err)
}

func TestSecret_FailsClosedWhenUnset(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.Error(t, Secret())

	t.Setenv("JWT_SECRET", "configured")
	require.NoError(t, Secret())
}

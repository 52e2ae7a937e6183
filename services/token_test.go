package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaj/constants"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(UserInfo{UserId: 42, Role: constants.RoleDealer}, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, constants.RoleDealer, role)
}

func TestGetUserIDFromTokenRejectsGarbage(t *testing.T) {
	_, _, err := GetUserIDFromToken("not-a-token")
	assert.Error(t, err)

	_, _, err = GetUserIDFromToken("a.b.c")
	assert.Error(t, err)
}

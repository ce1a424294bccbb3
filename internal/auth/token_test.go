package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsenako/console-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	shopID := "shop-ravinala"
	operator := &domain.Operator{
		ID:     "op-shop-1",
		Scope:  domain.ScopeShop,
		ShopID: &shopID,
	}

	token, expiresAt, err := tm.GenerateToken(operator)
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "op-shop-1", claims.OperatorID)
	assert.Equal(t, domain.ScopeShop, claims.Scope)
	require.NotNil(t, claims.ShopID)
	assert.Equal(t, shopID, *claims.ShopID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 60)
	token, _, err := tm.GenerateToken(&domain.Operator{ID: "op-1", Scope: domain.ScopePlatform})
	require.NoError(t, err)

	other := NewTokenManager("secret-b", 60)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("mon-secret", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "mon-secret"))
	assert.Error(t, ComparePassword(hash, "autre"))
}

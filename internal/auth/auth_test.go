package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdblog/models"
)

func newTestAuth() *Auth {
	return New("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestHashAndMatchPassword(t *testing.T) {
	auth := newTestAuth()

	hashed, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", string(hashed))

	match, err := auth.IsPasswordMatch(hashed, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = auth.IsPasswordMatch(hashed, "wrong password")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestGenerateTokenPair(t *testing.T) {
	auth := newTestAuth()
	user := &models.User{ID: 1, Username: "someone"}

	pair, err := auth.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := auth.AuthenticateAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, "someone", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	claims, err = auth.AuthenticateRefresh(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	auth := newTestAuth()
	pair, err := auth.GenerateTokenPair(&models.User{ID: 1, Username: "someone"})
	require.NoError(t, err)

	_, err = auth.AuthenticateAccess(pair.Refresh)
	assert.Error(t, err)

	_, err = auth.AuthenticateRefresh(pair.Access)
	assert.Error(t, err)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	pair, err := newTestAuth().GenerateTokenPair(&models.User{ID: 1, Username: "someone"})
	require.NoError(t, err)

	otherAuth := New("another-secret", 15*time.Minute, 24*time.Hour)
	_, err = otherAuth.AuthenticateAccess(pair.Access)
	assert.Error(t, err)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	expiredAuth := New("test-secret", -time.Minute, -time.Minute)
	pair, err := expiredAuth.GenerateTokenPair(&models.User{ID: 1, Username: "someone"})
	require.NoError(t, err)

	_, err = expiredAuth.AuthenticateAccess(pair.Access)
	assert.Error(t, err)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	_, err := newTestAuth().AuthenticateAccess("not-a-token")
	assert.Error(t, err)
}

func TestRequestContextUser(t *testing.T) {
	auth := newTestAuth()
	r := httptest.NewRequest("GET", "/api/article", nil)

	assert.False(t, auth.IsUserAuthenticated(r))
	_, err := auth.GetAuthenticatedUser(r)
	assert.Error(t, err)

	user := &models.User{ID: 7, Username: "someone"}
	r = auth.SetAuthenticatedUser(r, user)

	assert.True(t, auth.IsUserAuthenticated(r))
	got, err := auth.GetAuthenticatedUser(r)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

package auth

import "github.com/golang-jwt/jwt/v5"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	Username  string `json:"username"`
	TokenType string `json:"token_type"`

	jwt.RegisteredClaims
}

// TokenPair is the result of a credential exchange: a short-lived access
// token and a longer-lived refresh token.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdobak/go-xerrors"
	"golang.org/x/crypto/bcrypt"

	"mdblog/internal/web"
	"mdblog/models"
)

const UserCtxKey = "user_data"

var (
	NotAuthenticatedUser = xerrors.Message("Not authenticated user")
	ErrInvalidToken      = xerrors.Message("Invalid or expired token")
)

type Auth struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(secret string, accessTTL, refreshTTL time.Duration) *Auth {
	return &Auth{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (auth *Auth) HashPassword(plainTextPassword string) ([]byte, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), 12)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return hashedPassword, nil
}

func (auth *Auth) IsPasswordMatch(hashedPassword []byte, plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hashedPassword, []byte(plainTextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, xerrors.New(err)
	}

	return true, nil
}

// GenerateTokenPair issues an access/refresh pair for the user. Both
// tokens carry the username as subject and a token_type claim so one
// kind can never stand in for the other.
func (auth *Auth) GenerateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := auth.generateToken(user, TokenTypeAccess, auth.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := auth.generateToken(user, TokenTypeRefresh, auth.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (auth *Auth) generateToken(user *models.User, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()
	claim := Claims{
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	signedString, err := token.SignedString(auth.secret)
	if err != nil {
		return "", xerrors.New(err)
	}

	return signedString, nil
}

// AuthenticateAccess verifies an access token and returns its claims.
func (auth *Auth) AuthenticateAccess(tokenString string) (*Claims, error) {
	return auth.verify(tokenString, TokenTypeAccess)
}

// AuthenticateRefresh verifies a refresh token and returns its claims.
func (auth *Auth) AuthenticateRefresh(tokenString string) (*Claims, error) {
	return auth.verify(tokenString, TokenTypeRefresh)
}

func (auth *Auth) verify(tokenString string, wantType string) (*Claims, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.New("unexpected signing method")
		}
		return auth.secret, nil
	})

	if err != nil {
		return nil, xerrors.New(ErrInvalidToken)
	}

	if !parsedToken.Valid {
		return nil, xerrors.New(ErrInvalidToken)
	}

	claim, ok := parsedToken.Claims.(*Claims)
	if !ok {
		return nil, xerrors.New("could not parse claims")
	}

	if claim.TokenType != wantType {
		return nil, xerrors.New(ErrInvalidToken)
	}

	return claim, nil
}

func (auth *Auth) GetAuthenticatedUser(r *http.Request) (*models.User, error) {
	user, ok := web.GetValueFromContext[*models.User](r, UserCtxKey)
	if !ok {
		return nil, NotAuthenticatedUser
	}

	return user, nil
}

func (auth *Auth) SetAuthenticatedUser(r *http.Request, user *models.User) *http.Request {
	return web.AddValueToContext(r, UserCtxKey, user)
}

func (auth *Auth) IsUserAuthenticated(r *http.Request) bool {
	_, err := auth.GetAuthenticatedUser(r)
	return err == nil
}

// GenerateAccessToken issues a fresh access token, used by the refresh
// exchange.
func (auth *Auth) GenerateAccessToken(user *models.User) (string, error) {
	return auth.generateToken(user, TokenTypeAccess, auth.accessTTL)
}

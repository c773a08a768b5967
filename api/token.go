package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joinhub/join-backend/errs"
)

const tokenExpiration = 24 * time.Hour

// tokenClaims carries the user identity inside the signed token.
type tokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// tokenManager issues and validates the bearer tokens handed out by the
// api-token-auth endpoint.
type tokenManager struct {
	secret []byte
}

func newTokenManager(secret string) tokenManager {
	return tokenManager{secret: []byte(secret)}
}

// Generate creates a signed token for the given user ID.
func (m tokenManager) Generate(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "join-api",
			Subject:   userID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a token string and returns the user ID it was issued for.
func (m tokenManager) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return uuid.Nil, errs.NewInvalidTokenError()
	}
	return claims.UserID, nil
}

package auth

import (
	"fmt"
	"time"

	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 7 * 24 * time.Hour

var (
	ErrMissingToken  = errors.NewTagged(errors.TagJSONWebToken, "jwt must be provided")
	ErrMalformedAuth = errors.NewTagged(errors.TagJSONWebToken, "authorization header must be \"Bearer <token>\"")
	ErrInvalidToken  = errors.NewTagged(errors.TagJSONWebToken, "invalid token")
)

// creates a JWT token for the user
func GenerateJWT(secret, userID, email string, isAdmin bool) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret not set")
	}

	claims := Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validates a JWT token and returns the claims. Validation failures come back
// as golang-jwt errors, which the exception filter tags as JsonWebTokenError.
func ValidateJWT(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

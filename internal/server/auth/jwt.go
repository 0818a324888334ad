// Package auth implements the access token codec: issuing and verifying
// signed, time-limited identity tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"motoreg/internal/common"
)

// Claims is the claim set carried by an access token: the registered
// claims plus the authenticated username. The JSON key "user" matches the
// wire format of tokens issued by earlier deployments.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"user"`
}

// GenerateToken issues an HS256-signed token for the given username with
// an absolute expiry of now + validityDuration.
func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUsernameFromToken verifies the token signature and expiry and returns
// the embedded username. Expired tokens yield common.ErrTokenExpired and
// anything else that fails verification yields common.ErrInvalidToken;
// callers treat both as unauthenticated, the split exists for logging.
func GetUsernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Username, nil
}

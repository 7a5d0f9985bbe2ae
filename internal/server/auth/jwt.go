package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the room a browser session has joined and whether delete
// mode is on. Passwords are never part of the token.
type Claims struct {
	jwt.RegisteredClaims
	RoomID     string `json:"rid"`
	RoomName   string `json:"room"`
	DeleteMode bool   `json:"del,omitempty"`
}

// GenerateToken signs claims with HS256 and sets the expiry.
func GenerateToken(claims Claims, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(validityDuration))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired, anything else unusable common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.RoomName == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

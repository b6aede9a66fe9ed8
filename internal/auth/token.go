// Package auth issues and verifies the bearer tokens and password hashes the
// API uses for authentication. The catalog core never touches this package;
// it only ever sees the numeric user id and admin flag carried in the claims.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims is the JWT payload issued at login. The username travels in the
// registered Subject field.
type Claims struct {
	UserID  int64 `json:"id"`
	IsAdmin bool  `json:"is_admin"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for the given user, valid for ttl.
func SignToken(secret []byte, userID int64, username string, isAdmin bool, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry of tokenStr and returns its
// claims. Any failure (bad signature, expired, malformed) is returned as-is;
// callers only need to know the token was rejected.
func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

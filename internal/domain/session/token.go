package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const cookieTTL = 30 * 24 * time.Hour

var ErrInvalidCookie = errors.New("invalid session cookie")

// SignID wraps a session ID in an HMAC-signed token suitable for a cookie,
// so a forged cookie cannot point at someone else's session row.
func SignID(secret []byte, sessionID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(cookieTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	return signed, errors.Wrap(err, "sign session cookie")
}

// ParseID extracts the session ID from a signed cookie value.
func ParseID(secret []byte, value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCookie
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidCookie
	}
	return claims.Subject, nil
}

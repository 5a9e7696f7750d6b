package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrOpaqueToken is returned when a credential is not a JWT.
var ErrOpaqueToken = errors.New("credential is not a JWT")

// Claims is what the client can read from its credential without the
// server's key. None of it is verified.
type Claims struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the credential's expiry has passed at now.
// A credential with no expiry never reports expired.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the payload of a JWT credential.
func ParseClaims(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &tc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}
	c := Claims{Subject: tc.Subject, Email: tc.Email}
	if tc.IssuedAt != nil {
		c.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}

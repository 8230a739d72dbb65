package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the expected shape of a Tianshu bearer token: the standard
// registered claims plus a flat list of granted permission strings.
type Claims struct {
	jwt.RegisteredClaims
	Permissions []string `json:"permissions"`
}

// JWTAuthenticator verifies HMAC-signed (HS256/HS384/HS512) bearer tokens issued by an
// external identity service and turns their claims into a User.
//
// JWTAuthenticator does not issue or refresh tokens; it only holds the
// shared signing secret needed to verify them.
type JWTAuthenticator struct {
	secret []byte
}

// NewJWTAuthenticator creates a JWTAuthenticator using secret to verify
// token signatures.
func NewJWTAuthenticator(secret []byte) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret}
}

// Authenticate parses and verifies tokenString, returning ErrInvalidToken
// wrapping the underlying parse/verification error on any failure.
func (a *JWTAuthenticator) Authenticate(ctx context.Context, tokenString string) (*User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Method)
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	perms := make(map[Permission]bool, len(claims.Permissions))
	for _, p := range claims.Permissions {
		perms[Permission(p)] = true
	}
	return &User{Id: subject, Permissions: perms}, nil
}

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magicyuan876/mineru-tianshu/auth"
)

func signToken(t *testing.T, secret []byte, claims *auth.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestJWTAuthenticatorValid(t *testing.T) {
	secret := []byte("test-secret")
	authn := auth.NewJWTAuthenticator(secret)

	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Permissions: []string{string(auth.TaskSubmit), string(auth.QueueView)},
	}
	tokenString := signToken(t, secret, claims)

	user, err := authn.Authenticate(context.Background(), tokenString)
	if err != nil {
		t.Fatal(err)
	}
	if user.Id != "alice" {
		t.Fatalf("expected alice, got %s", user.Id)
	}
	if !user.Has(auth.TaskSubmit) {
		t.Fatal("expected TaskSubmit permission")
	}
	if user.Has(auth.QueueManage) {
		t.Fatal("did not expect QueueManage permission")
	}
}

func TestJWTAuthenticatorRejectsWrongSecret(t *testing.T) {
	authn := auth.NewJWTAuthenticator([]byte("real-secret"))
	tokenString := signToken(t, []byte("wrong-secret"), &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	})

	if _, err := authn.Authenticate(context.Background(), tokenString); err == nil {
		t.Fatal("expected error for token signed with wrong secret")
	}
}

func TestJWTAuthenticatorRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	authn := auth.NewJWTAuthenticator(secret)
	tokenString := signToken(t, secret, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	if _, err := authn.Authenticate(context.Background(), tokenString); err == nil {
		t.Fatal("expected error for expired token")
	}
}

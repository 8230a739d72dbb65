package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when a bearer token fails verification:
// malformed, expired, or signed with the wrong key.
var ErrInvalidToken = errors.New("auth: invalid token")

// Authenticator resolves a bearer token into the User it identifies.
//
// Authenticator does not issue tokens, manage a user store, or hash
// credentials — those are an external collaborator (spec.md §1
// Non-goals). It only verifies a token this system was handed and
// reports who it belongs to and what they're allowed to do.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*User, error)
}

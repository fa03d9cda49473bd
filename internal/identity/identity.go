// Package identity verifies bearer tokens issued by the external identity
// provider. Token issuance is not handled here.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Identity resolves a bearer token to the id of the user it was issued to
type Identity interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

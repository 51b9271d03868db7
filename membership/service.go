// Package membership handles account registration and login against the
// record store. Credentials are stored as salted Argon2id hashes and never
// leave the store boundary: every user returned by this package is
// sanitized.
package membership

import (
	"context"

	"librastore/store"
)

// Service defines the interface for the membership service.
type Service interface {
	Register(ctx context.Context, email, password, name string) (store.User, error)
	Login(ctx context.Context, email, password string) (store.User, error)
	GetUser(ctx context.Context, id string) (store.User, error)
}

package api

import (
	"context"

	"lifeos/domain"
)

// Storage abstracts persistence for handlers.
type Storage interface {
	Load(ctx context.Context, email string) (*domain.UserData, error)
	Save(ctx context.Context, email string, data *domain.UserData) error
}

// Credentials is implemented by credential stores able to verify and create
// identities. Password material never reaches the per-identity data documents.
type Credentials interface {
	// Create registers a new identity. It returns ErrIdentityExists when the
	// identity is already registered.
	Create(email, password, name string) error
	// Verify checks a password and returns the profile on success. It returns
	// ErrInvalidCredentials for unknown identities and wrong passwords alike.
	Verify(email, password string) (domain.User, error)
	// Exists reports whether the identity is registered.
	Exists(email string) bool
	// Profile returns the stored profile for a registered identity.
	Profile(email string) (domain.User, bool)
}

package user

import "context"

// Store persists users. FindOrCreateByEmail is the social-login entry
// point: the email is the unique key for provider identity mapping.
type Store interface {
	// FindOrCreateByEmail returns the user with the given email,
	// creating one if none exists. created reports whether this call
	// created the user (first login).
	FindOrCreateByEmail(ctx context.Context, email string) (u *User, created bool, err error)

	// FindByID returns the user or nil if not found.
	FindByID(ctx context.Context, id string) (*User, error)

	// Save writes back all mutable fields of the user.
	Save(ctx context.Context, u *User) error

	// LinkIdentity records the provider identity mapping for the user.
	// Re-linking an existing mapping is a no-op.
	LinkIdentity(ctx context.Context, userID, provider, providerUserID string) error
}

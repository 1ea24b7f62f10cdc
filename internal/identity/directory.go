// Package identity manages user entries in the identity provider that backs
// the API. Every record-store user is expected to have a matching directory
// entry; the service keeps the pair in sync on create and delete.
package identity

import "context"

// Directory is the identity-provider contract the service consumes. The
// username is the user's email in every call.
type Directory interface {
	// CreateUser provisions the user and triggers an email invite.
	CreateUser(ctx context.Context, email string, isDionysusAdmin bool) error

	// RestoreUser re-provisions a user without re-sending the invite. Used to
	// roll back a half-finished delete.
	RestoreUser(ctx context.Context, email string, isDionysusAdmin bool) error

	// DeleteUser removes the user from the pool.
	DeleteUser(ctx context.Context, email string) error
}

package credentials

import (
	"context"
)

// Repository is the store contract the auth service depends on.
//
// GetByEmail returns common.ErrorNotFound for an unknown email. Create
// returns common.ErrorAlreadyExists when the email is already present; the
// driver's own uniqueness enforcement is authoritative, callers must not
// rely on a prior GetByEmail check.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	Create(ctx context.Context, cred *Credential) (*Credential, error)
	Close(ctx context.Context) error
}

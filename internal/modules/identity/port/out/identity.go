package out

import (
	"context"

	"studyquest/internal/modules/identity/domain"
)

type AccountStore interface {
	// Create fails with ErrAccountExists when the email is taken.
	Create(ctx context.Context, account domain.Account) error
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
}

type CurrentIdentityStore interface {
	SaveCurrent(ctx context.Context, identity domain.Identity) error
	LoadCurrent(ctx context.Context) (domain.Identity, error)
	ClearCurrent(ctx context.Context) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

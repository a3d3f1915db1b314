package in

import (
	"context"

	"studyquest/internal/modules/identity/dto"
)

type Usecase interface {
	SignUp(ctx context.Context, input dto.CredentialsInput) (dto.IdentityOutput, error)
	SignIn(ctx context.Context, input dto.CredentialsInput) (dto.IdentityOutput, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (dto.IdentityOutput, error)
	// Restore re-attaches the identity remembered from a previous run.
	Restore(ctx context.Context) (dto.IdentityOutput, error)
}

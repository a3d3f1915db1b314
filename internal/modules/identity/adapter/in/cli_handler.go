package in

import (
	"context"

	"studyquest/internal/modules/identity/dto"
	identityin "studyquest/internal/modules/identity/port/in"
)

type CLIHandler struct {
	usecase identityin.Usecase
}

func NewCLIHandler(usecase identityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SignUp(ctx context.Context, email, password string) (dto.IdentityOutput, error) {
	return h.usecase.SignUp(ctx, dto.CredentialsInput{Email: email, Password: password})
}

func (h CLIHandler) SignIn(ctx context.Context, email, password string) (dto.IdentityOutput, error) {
	return h.usecase.SignIn(ctx, dto.CredentialsInput{Email: email, Password: password})
}

func (h CLIHandler) SignOut(ctx context.Context) error {
	return h.usecase.SignOut(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.IdentityOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Restore(ctx context.Context) (dto.IdentityOutput, error) {
	return h.usecase.Restore(ctx)
}

package in

import (
	"context"

	"studyquest/internal/modules/entitlement/dto"
	entitlementin "studyquest/internal/modules/entitlement/port/in"
)

type CLIHandler struct {
	usecase entitlementin.Usecase
}

func NewCLIHandler(usecase entitlementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

// Check reports whether a new session could start right now.
func (h CLIHandler) Check(ctx context.Context) (dto.StartOutput, error) {
	return h.usecase.CanStart(ctx)
}

// EndSession charges a finished session against the caller's quota.
func (h CLIHandler) EndSession(ctx context.Context) (dto.EndOutput, error) {
	return h.usecase.EndSession(ctx)
}

func (h CLIHandler) Grant(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Grant(ctx)
}

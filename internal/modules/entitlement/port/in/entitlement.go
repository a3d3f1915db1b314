package in

import (
	"context"

	"studyquest/internal/modules/entitlement/dto"
)

type Usecase interface {
	Status(ctx context.Context) (dto.StatusOutput, error)
	CanStart(ctx context.Context) (dto.StartOutput, error)
	EndSession(ctx context.Context) (dto.EndOutput, error)
	Grant(ctx context.Context) (dto.StatusOutput, error)
}

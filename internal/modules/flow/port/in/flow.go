package in

import (
	"context"

	"studyquest/internal/modules/flow/dto"
)

type Usecase interface {
	Current(ctx context.Context) (dto.ScreenOutput, error)
	Dispatch(ctx context.Context, input dto.EventInput) (dto.StepOutput, error)
}

package usecase

import (
	"context"

	"studyquest/internal/modules/flow/dto"
	flowin "studyquest/internal/modules/flow/port/in"
	"studyquest/internal/modules/flow/service"
)

type Interactor struct {
	nav *service.Navigator
}

func NewInteractor(nav *service.Navigator) flowin.Usecase {
	return &Interactor{nav: nav}
}

func (i *Interactor) Current(_ context.Context) (dto.ScreenOutput, error) {
	return i.nav.Current(), nil
}

func (i *Interactor) Dispatch(ctx context.Context, input dto.EventInput) (dto.StepOutput, error) {
	return i.nav.Dispatch(ctx, input)
}

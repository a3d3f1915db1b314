package in

import (
	"context"

	"studyquest/internal/modules/flow/dto"
	flowin "studyquest/internal/modules/flow/port/in"
	progressdto "studyquest/internal/modules/progress/dto"
)

// TUIHandler gives the screens one method per user action.
type TUIHandler struct {
	usecase flowin.Usecase
}

func NewTUIHandler(usecase flowin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Current(ctx context.Context) (dto.ScreenOutput, error) {
	return h.usecase.Current(ctx)
}

func (h TUIHandler) Acknowledge(ctx context.Context) (dto.StepOutput, error) {
	return h.send(ctx, dto.EventAcknowledge)
}

func (h TUIHandler) StartSession(ctx context.Context) (dto.StepOutput, error) {
	return h.send(ctx, dto.EventStartSession)
}

func (h TUIHandler) BeginFocus(ctx context.Context, bookID string) (dto.StepOutput, error) {
	return h.usecase.Dispatch(ctx, dto.EventInput{Event: dto.EventBeginFocus, BookID: bookID})
}

func (h TUIHandler) Cancel(ctx context.Context) (dto.StepOutput, error) {
	return h.send(ctx, dto.EventCancel)
}

func (h TUIHandler) FinishFocus(ctx context.Context) (dto.StepOutput, error) {
	return h.send(ctx, dto.EventFinishFocus)
}

func (h TUIHandler) Rate(ctx context.Context, rating int) (dto.StepOutput, error) {
	return h.usecase.Dispatch(ctx, dto.EventInput{Event: dto.EventRate, Rating: rating})
}

func (h TUIHandler) SkipRating(ctx context.Context) (dto.StepOutput, error) {
	return h.send(ctx, dto.EventSkipRating)
}

func (h TUIHandler) SubmitReflection(ctx context.Context, reflection progressdto.ReflectionInput) (dto.StepOutput, error) {
	return h.usecase.Dispatch(ctx, dto.EventInput{Event: dto.EventSubmitReflection, Reflection: reflection})
}

func (h TUIHandler) SkipReflection(ctx context.Context) (dto.StepOutput, error) {
	return h.send(ctx, dto.EventSkipReflection)
}

// KeepSynthesis saves the note with the generated synthesis, or with edited
// when it is non-nil.
func (h TUIHandler) KeepSynthesis(ctx context.Context, edited *progressdto.SynthesisOutput) (dto.StepOutput, error) {
	return h.usecase.Dispatch(ctx, dto.EventInput{Event: dto.EventKeepSynthesis, Synthesis: edited})
}

func (h TUIHandler) SkipSynthesis(ctx context.Context) (dto.StepOutput, error) {
	return h.send(ctx, dto.EventSkipSynthesis)
}

func (h TUIHandler) Open(ctx context.Context, event string) (dto.StepOutput, error) {
	return h.send(ctx, event)
}

func (h TUIHandler) Back(ctx context.Context) (dto.StepOutput, error) {
	return h.send(ctx, dto.EventBack)
}

func (h TUIHandler) Upgrade(ctx context.Context) (dto.StepOutput, error) {
	return h.send(ctx, dto.EventUpgrade)
}

func (h TUIHandler) send(ctx context.Context, ev string) (dto.StepOutput, error) {
	return h.usecase.Dispatch(ctx, dto.EventInput{Event: ev})
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"studyquest/internal/modules/identity/domain"
	"studyquest/internal/modules/identity/dto"
	identityin "studyquest/internal/modules/identity/port/in"
	identityout "studyquest/internal/modules/identity/port/out"
	"studyquest/internal/modules/identity/service"
	progressin "studyquest/internal/modules/progress/port/in"
	apperrors "studyquest/internal/platform/errors"
	"studyquest/internal/platform/logger"
	"studyquest/internal/platform/notify"
)

type Interactor struct {
	auth     *service.AuthService
	session  *service.SessionContext
	store    identityout.CurrentIdentityStore
	progress progressin.Usecase
	notifier notify.Notifier
	log      *logger.Logger
}

func NewInteractor(
	auth *service.AuthService,
	session *service.SessionContext,
	store identityout.CurrentIdentityStore,
	progress progressin.Usecase,
	notifier notify.Notifier,
	log *logger.Logger,
) identityin.Usecase {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Interactor{auth: auth, session: session, store: store, progress: progress, notifier: notifier, log: log}
}

func (i *Interactor) SignUp(ctx context.Context, input dto.CredentialsInput) (dto.IdentityOutput, error) {
	identity, err := i.auth.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		i.notifyFailure("Sign up failed", err)
		return dto.IdentityOutput{}, err
	}
	out, err := i.attach(ctx, identity)
	if err != nil {
		return dto.IdentityOutput{}, err
	}
	i.notifier.Notify(notify.Notice{Level: notify.LevelSuccess, Title: "Account created!", Message: "Your progress will be saved."})
	return out, nil
}

func (i *Interactor) SignIn(ctx context.Context, input dto.CredentialsInput) (dto.IdentityOutput, error) {
	identity, err := i.auth.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		i.notifyFailure("Sign in failed", err)
		return dto.IdentityOutput{}, err
	}
	out, err := i.attach(ctx, identity)
	if err != nil {
		return dto.IdentityOutput{}, err
	}
	i.notifier.Notify(notify.Notice{Level: notify.LevelSuccess, Title: "Welcome back!", Message: "Signed in as " + identity.Email})
	return out, nil
}

// attach makes identity current, remembers it on disk and reconciles progress.
// A different account that is still signed in is detached first, so only
// guest progress is ever pushed into a new account.
func (i *Interactor) attach(ctx context.Context, identity domain.Identity) (dto.IdentityOutput, error) {
	if current, ok := i.session.Current(); ok && current.UserID != identity.UserID {
		if err := i.detach(ctx, current); err != nil {
			return dto.IdentityOutput{}, err
		}
	}
	i.session.Set(identity)
	if i.store != nil {
		if err := i.store.SaveCurrent(ctx, identity); err != nil {
			i.log.Warn("remember identity failed", "user_id", identity.UserID, "error", err)
		}
	}
	out := dto.IdentityOutput{SignedIn: true, UserID: identity.UserID, Email: identity.Email}
	if i.progress == nil {
		return out, nil
	}
	synced, err := i.progress.SyncIdentity(ctx, identity.UserID)
	if err != nil {
		i.log.Warn("progress sync failed", "user_id", identity.UserID, "error", err)
		i.notifier.Notify(notify.Notice{Level: notify.LevelError, Title: "Sync failed", Message: "Progress is kept on this device for now."})
		return out, nil
	}
	out.ProgressLoaded = synced.Loaded
	return out, nil
}

func (i *Interactor) SignOut(ctx context.Context) error {
	identity, ok := i.session.Current()
	if !ok {
		return apperrors.ErrNoIdentity
	}
	if err := i.detach(ctx, identity); err != nil {
		return err
	}
	i.notifier.Notify(notify.Notice{Level: notify.LevelInfo, Title: "Signed out"})
	return nil
}

// detach writes identity's progress, forgets it and falls back to guest state.
func (i *Interactor) detach(ctx context.Context, identity domain.Identity) error {
	if i.progress != nil {
		if err := i.progress.Flush(ctx); err != nil {
			i.log.Warn("final progress flush failed", "user_id", identity.UserID, "error", err)
		}
	}
	i.session.Clear()
	if i.store != nil {
		if err := i.store.ClearCurrent(ctx); err != nil {
			return fmt.Errorf("forget identity: %w", err)
		}
	}
	if i.progress != nil {
		if err := i.progress.ResetToGuest(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interactor) Current(_ context.Context) (dto.IdentityOutput, error) {
	identity, ok := i.session.Current()
	if !ok {
		return dto.IdentityOutput{}, nil
	}
	return dto.IdentityOutput{SignedIn: true, UserID: identity.UserID, Email: identity.Email}, nil
}

func (i *Interactor) Restore(ctx context.Context) (dto.IdentityOutput, error) {
	if i.store == nil {
		return dto.IdentityOutput{}, nil
	}
	identity, err := i.store.LoadCurrent(ctx)
	if errors.Is(err, apperrors.ErrNoIdentity) {
		return dto.IdentityOutput{}, nil
	}
	if err != nil {
		return dto.IdentityOutput{}, err
	}
	return i.attach(ctx, identity)
}

func (i *Interactor) notifyFailure(title string, err error) {
	var fields domain.FieldErrors
	if errors.As(err, &fields) {
		for _, msg := range fields {
			i.notifier.Notify(notify.Notice{Level: notify.LevelError, Title: title, Message: msg})
		}
		return
	}
	i.notifier.Notify(notify.Notice{Level: notify.LevelError, Title: title, Message: err.Error()})
}

package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	identityout "studyquest/internal/modules/identity/adapter/out"
	"studyquest/internal/modules/identity/domain"
	"studyquest/internal/modules/identity/dto"
	identityin "studyquest/internal/modules/identity/port/in"
	"studyquest/internal/modules/identity/service"
	"studyquest/internal/modules/identity/usecase"
	progressdomain "studyquest/internal/modules/progress/domain"
	progressdto "studyquest/internal/modules/progress/dto"
	progressin "studyquest/internal/modules/progress/port/in"
	progressservice "studyquest/internal/modules/progress/service"
	progressusecase "studyquest/internal/modules/progress/usecase"
	"studyquest/internal/platform/clock"
	apperrors "studyquest/internal/platform/errors"
	"studyquest/internal/platform/id"
	"studyquest/internal/platform/notify"
)

type memoryAccounts struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
}

func (m *memoryAccounts) Create(_ context.Context, a domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.Email]; ok {
		return apperrors.ErrAccountExists
	}
	m.accounts[a.Email] = a
	return nil
}

func (m *memoryAccounts) FindByEmail(_ context.Context, email string) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[email]
	if !ok {
		return domain.Account{}, apperrors.ErrNotFound
	}
	return a, nil
}

// progressSpy records the identity hooks and leaves the rest unimplemented.
type progressSpy struct {
	progressin.Usecase
	synced  []string
	flushed int
	resets  int
	loaded  bool
}

func (p *progressSpy) SyncIdentity(_ context.Context, userID string) (progressdto.SyncOutput, error) {
	p.synced = append(p.synced, userID)
	return progressdto.SyncOutput{UserID: userID, Loaded: p.loaded}, nil
}

func (p *progressSpy) Flush(context.Context) error {
	p.flushed++
	return nil
}

func (p *progressSpy) ResetToGuest(context.Context) error {
	p.resets++
	return nil
}

type memorySnapshots struct {
	mu   sync.Mutex
	data map[string]progressdomain.Snapshot
}

func (m *memorySnapshots) Load(_ context.Context, userID string) (progressdomain.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.data[userID]
	return snap, ok, nil
}

func (m *memorySnapshots) Save(_ context.Context, userID string, snap progressdomain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[userID] = snap
	return nil
}

func (m *memorySnapshots) get(userID string) (progressdomain.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.data[userID]
	return snap, ok
}

type harness struct {
	uc       identityin.Usecase
	session  *service.SessionContext
	progress *progressSpy
	notices  *notify.Channel
	path     string
}

func newHarness(t *testing.T, path string) harness {
	t.Helper()
	if path == "" {
		path = filepath.Join(t.TempDir(), "identity.json")
	}
	session := service.NewSessionContext()
	progress := &progressSpy{}
	notices := notify.NewChannel(16)
	auth := service.NewAuthService(
		clock.Fixed{At: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)},
		id.UUID{},
		&memoryAccounts{accounts: map[string]domain.Account{}},
		identityout.NewBcryptHasher(bcrypt.MinCost),
	)
	uc := usecase.NewInteractor(auth, session, identityout.NewFileIdentityStore(path), progress, notices, nil)
	return harness{uc: uc, session: session, progress: progress, notices: notices, path: path}
}

func nextNotice(t *testing.T, c *notify.Channel) notify.Notice {
	t.Helper()
	select {
	case n := <-c.C():
		return n
	default:
		t.Fatalf("expected a notice")
		return notify.Notice{}
	}
}

func TestSignUpAttachesIdentityAndSyncsProgress(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "")
	ctx := context.Background()

	out, err := h.uc.SignUp(ctx, dto.CredentialsInput{Email: "Ada@Example.com", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, out.SignedIn)
	assert.Equal(t, "ada@example.com", out.Email)

	userID, ok := h.session.CurrentUserID()
	require.True(t, ok)
	assert.Equal(t, out.UserID, userID)
	assert.Equal(t, []string{userID}, h.progress.synced)
	assert.Equal(t, "Account created!", nextNotice(t, h.notices).Title)

	_, err = h.uc.SignUp(ctx, dto.CredentialsInput{Email: "ada@example.com", Password: "secret"})
	require.ErrorIs(t, err, apperrors.ErrAccountExists)
}

func TestSignUpValidationErrors(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "")
	_, err := h.uc.SignUp(context.Background(), dto.CredentialsInput{Email: "nope", Password: "123"})
	var fields domain.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, domain.MsgInvalidEmail, fields["email"])
	assert.Equal(t, domain.MsgShortPassword, fields["password"])
	_, ok := h.session.CurrentUserID()
	assert.False(t, ok)
	assert.Empty(t, h.progress.synced)
}

func TestSignInSignOutRoundTrip(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "")
	ctx := context.Background()
	creds := dto.CredentialsInput{Email: "ada@example.com", Password: "secret"}

	_, err := h.uc.SignUp(ctx, creds)
	require.NoError(t, err)
	require.NoError(t, h.uc.SignOut(ctx))
	assert.Equal(t, 1, h.progress.flushed)
	assert.Equal(t, 1, h.progress.resets)

	_, err = h.uc.SignIn(ctx, dto.CredentialsInput{Email: "ada@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	h.progress.loaded = true
	out, err := h.uc.SignIn(ctx, creds)
	require.NoError(t, err)
	assert.True(t, out.ProgressLoaded)

	require.ErrorIs(t, newHarness(t, "").uc.SignOut(ctx), apperrors.ErrNoIdentity)
}

func TestRestoreRemembersIdentityAcrossRuns(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "identity.json")
	first := newHarness(t, path)
	ctx := context.Background()
	signed, err := first.uc.SignUp(ctx, dto.CredentialsInput{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	second := newHarness(t, path)
	restored, err := second.uc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, signed.UserID, restored.UserID)
	current, err := second.uc.Current(ctx)
	require.NoError(t, err)
	assert.True(t, current.SignedIn)

	empty := newHarness(t, "")
	restored, err = empty.uc.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, restored.SignedIn)
}

func TestSwitchingAccountsKeepsProgressApart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	session := service.NewSessionContext()
	snapshots := &memorySnapshots{data: map[string]progressdomain.Snapshot{}}
	store := progressservice.NewStore(progressservice.Deps{
		Clock:     clock.Fixed{At: time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)},
		IDs:       id.UUID{},
		Snapshots: snapshots,
		Identity:  session,
		Debounce:  time.Hour,
	}, progressdomain.NewState(true))
	t.Cleanup(func() { _ = store.Close(ctx) })
	progress := progressusecase.NewInteractor(store, nil, nil)
	auth := service.NewAuthService(
		clock.Fixed{At: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)},
		id.UUID{},
		&memoryAccounts{accounts: map[string]domain.Account{}},
		identityout.NewBcryptHasher(bcrypt.MinCost),
	)
	uc := usecase.NewInteractor(auth, session, identityout.NewFileIdentityStore(filepath.Join(t.TempDir(), "identity.json")), progress, notify.NewChannel(16), nil)

	guest, err := progress.Stats(ctx)
	require.NoError(t, err)

	first, err := uc.SignUp(ctx, dto.CredentialsInput{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	for range 2 {
		_, err = progress.CompleteSession(ctx, progressdto.CompleteSessionInput{BookID: "math"})
		require.NoError(t, err)
	}

	// The debounced write for the first account is still pending here.
	second, err := uc.SignUp(ctx, dto.CredentialsInput{Email: "grace@example.com", Password: "secret"})
	require.NoError(t, err)
	require.NotEqual(t, first.UserID, second.UserID)
	assert.False(t, second.ProgressLoaded)

	stats, err := progress.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, guest.TotalSessions, stats.TotalSessions)
	assert.Equal(t, guest.TotalXP, stats.TotalXP)

	firstSnap, ok := snapshots.get(first.UserID)
	require.True(t, ok)
	assert.Equal(t, guest.TotalSessions+2, firstSnap.TotalSessions)

	secondSnap, ok := snapshots.get(second.UserID)
	require.True(t, ok)
	assert.Equal(t, guest.TotalSessions, secondSnap.TotalSessions)
	assert.Equal(t, guest.TotalXP, secondSnap.TotalXP)

	require.NoError(t, store.Flush(ctx))
	firstSnap, _ = snapshots.get(first.UserID)
	assert.Equal(t, guest.TotalSessions+2, firstSnap.TotalSessions)
	secondSnap, _ = snapshots.get(second.UserID)
	assert.Equal(t, guest.TotalSessions, secondSnap.TotalSessions)
}

func TestSignInAsAnotherAccountDetachesTheFirst(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "")
	ctx := context.Background()

	_, err := h.uc.SignUp(ctx, dto.CredentialsInput{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Zero(t, h.progress.resets)

	_, err = h.uc.SignUp(ctx, dto.CredentialsInput{Email: "grace@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, 1, h.progress.flushed)
	assert.Equal(t, 1, h.progress.resets)
	assert.Len(t, h.progress.synced, 2)

	_, err = h.uc.SignIn(ctx, dto.CredentialsInput{Email: "grace@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, 1, h.progress.resets, "signing in again as the current account keeps its progress")
}

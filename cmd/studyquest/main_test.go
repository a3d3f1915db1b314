package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entitlementin "studyquest/internal/modules/entitlement/adapter/in"
	entitlementout "studyquest/internal/modules/entitlement/adapter/out"
	entitlementdomain "studyquest/internal/modules/entitlement/domain"
	"studyquest/internal/modules/entitlement/service"
	"studyquest/internal/modules/entitlement/usecase"
	progressdto "studyquest/internal/modules/progress/dto"
	"studyquest/internal/platform/sqlitedb"
)

type signedIn string

func (s signedIn) CurrentUserID() (string, bool) { return string(s), s != "" }

type recorderSpy struct{ books []string }

func (r *recorderSpy) CompleteSession(_ context.Context, bookID string, _ int) (progressdto.CompleteSessionOutput, error) {
	r.books = append(r.books, bookID)
	return progressdto.CompleteSessionOutput{XPGained: 25}, nil
}

func newGateCLI(t *testing.T, who signedIn) entitlementin.CLIHandler {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ledger, err := entitlementout.NewSQLiteLedger(db)
	require.NoError(t, err)
	gate := service.NewGate(service.GateDeps{Provider: ledger, Recorder: ledger, Identity: who, GuestQuota: 3})
	return entitlementin.NewCLIHandler(usecase.NewInteractor(gate, who))
}

func TestRecordGatedSessionSpendsCreditsUntilRefused(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gate := newGateCLI(t, "user-1")
	rec := &recorderSpy{}

	for i := range entitlementdomain.DefaultCredits {
		out, end, err := recordGatedSession(ctx, gate, rec, "math", 0)
		require.NoError(t, err, "session %d", i+1)
		assert.Equal(t, 25, out.XPGained)
		assert.True(t, end.CreditUsed)
	}

	status, err := gate.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.Credits)

	_, _, err = recordGatedSession(ctx, gate, rec, "math", 0)
	require.ErrorIs(t, err, errSessionLimit)
	assert.Len(t, rec.books, entitlementdomain.DefaultCredits, "a refused session is not recorded")
}

func TestRecordGatedSessionCountsGuestVisits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gate := newGateCLI(t, "")
	rec := &recorderSpy{}

	for range 3 {
		_, _, err := recordGatedSession(ctx, gate, rec, "art", 4)
		require.NoError(t, err)
	}
	_, _, err := recordGatedSession(ctx, gate, rec, "art", 4)
	require.ErrorIs(t, err, errSessionLimit)
	assert.Len(t, rec.books, 3)
}

func TestRecordGatedSessionUnlimitedForPremium(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gate := newGateCLI(t, "user-2")
	_, err := gate.Grant(ctx)
	require.NoError(t, err)

	rec := &recorderSpy{}
	for range entitlementdomain.DefaultCredits + 2 {
		_, end, err := recordGatedSession(ctx, gate, rec, "math", 0)
		require.NoError(t, err)
		assert.False(t, end.CreditUsed)
	}
}

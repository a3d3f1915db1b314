package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entitlementout "studyquest/internal/modules/entitlement/adapter/out"
	"studyquest/internal/modules/entitlement/domain"
	"studyquest/internal/modules/entitlement/service"
	"studyquest/internal/modules/entitlement/usecase"
	apperrors "studyquest/internal/platform/errors"
	"studyquest/internal/platform/sqlitedb"
)

type identity string

func (i identity) CurrentUserID() (string, bool) { return string(i), i != "" }

func newGate(t *testing.T, who identity) *service.Gate {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ledger, err := entitlementout.NewSQLiteLedger(db)
	require.NoError(t, err)
	return service.NewGate(service.GateDeps{Provider: ledger, Recorder: ledger, Identity: who, GuestQuota: 2})
}

func TestGuestStatusCountsDown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gate := newGate(t, "")
	uc := usecase.NewInteractor(gate, identity(""))

	status, err := uc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TierGuest), status.Tier)
	assert.Equal(t, 2, status.Remaining)
	assert.Empty(t, status.UserID)

	end, err := uc.EndSession(ctx)
	require.NoError(t, err)
	assert.False(t, end.GuestQuotaExhausted)
	end, err = uc.EndSession(ctx)
	require.NoError(t, err)
	assert.True(t, end.GuestQuotaExhausted)
	assert.Equal(t, 2, end.VisitSessions)

	start, err := uc.CanStart(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DecisionSoftLock), start.Decision)
	assert.Equal(t, 0, start.Status.Remaining)
}

func TestFreeUserSpendsCreditThenUpgrades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gate := newGate(t, "user-1")
	uc := usecase.NewInteractor(gate, identity("user-1"))

	status, err := uc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TierFree), status.Tier)
	assert.Equal(t, "user-1", status.UserID)
	assert.Equal(t, domain.DefaultCredits, status.Credits)

	end, err := uc.EndSession(ctx)
	require.NoError(t, err)
	assert.True(t, end.CreditUsed)

	status, err = uc.Grant(ctx)
	require.NoError(t, err)
	assert.True(t, status.Premium)
	assert.Equal(t, -1, status.Remaining)
	assert.NotEmpty(t, status.PurchaseDate)
}

func TestGrantNeedsIdentity(t *testing.T) {
	t.Parallel()
	gate := newGate(t, "")
	uc := usecase.NewInteractor(gate, identity(""))
	_, err := uc.Grant(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNoIdentity)
}

package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquest/internal/modules/entitlement/domain"
	"studyquest/internal/modules/entitlement/service"
	apperrors "studyquest/internal/platform/errors"
)

type fakeProvider struct {
	mu       sync.Mutex
	premium  bool
	credits  int
	checks   atomic.Int32
	checkErr error
}

func (f *fakeProvider) CheckPurchaseStatus(context.Context, string) (domain.PurchaseStatus, error) {
	f.checks.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checkErr != nil {
		return domain.PurchaseStatus{}, f.checkErr
	}
	return domain.PurchaseStatus{IsPremium: f.premium}, nil
}

func (f *fakeProvider) UseCredit(context.Context, string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.credits <= 0 {
		return false, nil
	}
	f.credits--
	return true, nil
}

func (f *fakeProvider) Credits(context.Context, string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.credits, nil
}

func (f *fakeProvider) RecordPurchase(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.premium = true
	return nil
}

func (f *fakeProvider) setPremium(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.premium = v
}

type identity string

func (i identity) CurrentUserID() (string, bool) { return string(i), i != "" }

func TestGateGuestQuota(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gate := service.NewGate(service.GateDeps{Provider: &fakeProvider{}, Identity: identity(""), GuestQuota: 2})

	decision, _ := gate.CanStart(ctx)
	require.Equal(t, domain.DecisionAllow, decision)
	q, used := gate.EndSession(ctx)
	assert.False(t, used)
	assert.False(t, q.GuestQuotaExhausted())
	assert.Equal(t, 1, q.VisitSessions)

	decision, _ = gate.CanStart(ctx)
	require.Equal(t, domain.DecisionAllow, decision)
	q, _ = gate.EndSession(ctx)
	assert.True(t, q.GuestQuotaExhausted())

	decision, q = gate.CanStart(ctx)
	assert.Equal(t, domain.DecisionSoftLock, decision)
	assert.Equal(t, 0, q.Remaining())
}

func TestGateFreeUserSpendsCredits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider := &fakeProvider{credits: 1}
	gate := service.NewGate(service.GateDeps{Provider: provider, Identity: identity("u1")})

	decision, q := gate.CanStart(ctx)
	require.Equal(t, domain.DecisionAllow, decision)
	assert.Equal(t, domain.TierFree, q.Tier)

	q, used := gate.EndSession(ctx)
	assert.True(t, used)
	assert.Equal(t, 0, q.Credits)
	assert.False(t, q.GuestQuotaExhausted(), "free users are not held to the guest quota")

	decision, _ = gate.CanStart(ctx)
	assert.Equal(t, domain.DecisionSoftLock, decision)
}

func TestGatePremiumLatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider := &fakeProvider{premium: true}
	gate := service.NewGate(service.GateDeps{Provider: provider, Identity: identity("u1")})

	decision, q := gate.CanStart(ctx)
	require.Equal(t, domain.DecisionAllow, decision)
	require.Equal(t, domain.TierPremium, q.Tier)

	provider.setPremium(false)
	for range 5 {
		gate.EndSession(ctx)
	}
	decision, q = gate.CanStart(ctx)
	assert.Equal(t, domain.DecisionAllow, decision)
	assert.Equal(t, domain.TierPremium, q.Tier)
	assert.Equal(t, int32(1), provider.checks.Load(), "latched premium skips the provider")
}

func TestGateProviderFailureFallsBackToGuestRule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gate := service.NewGate(service.GateDeps{
		Provider:   &fakeProvider{checkErr: errors.New("offline")},
		Identity:   identity("u1"),
		GuestQuota: 1,
	})
	decision, q := gate.CanStart(ctx)
	assert.Equal(t, domain.DecisionAllow, decision)
	assert.Equal(t, domain.TierGuest, q.Tier)
}

func TestGateGrant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider := &fakeProvider{}

	_, _, err := service.NewGate(service.GateDeps{Provider: provider, Recorder: provider, Identity: identity("")}).Grant(ctx)
	require.ErrorIs(t, err, apperrors.ErrNoIdentity)

	_, _, err = service.NewGate(service.GateDeps{Provider: provider, Identity: identity("u1")}).Grant(ctx)
	require.ErrorIs(t, err, apperrors.ErrProviderDisabled)

	q, status, err := service.NewGate(service.GateDeps{Provider: provider, Recorder: provider, Identity: identity("u1")}).Grant(ctx)
	require.NoError(t, err)
	assert.True(t, status.Premium())
	assert.Equal(t, domain.TierPremium, q.Tier)
}

type switchableIdentity struct {
	mu     sync.Mutex
	userID string
}

func (s *switchableIdentity) CurrentUserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.userID != ""
}

func (s *switchableIdentity) set(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

func TestGatePremiumLatchFollowsIdentity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider := &fakeProvider{premium: true, credits: 1}
	who := &switchableIdentity{userID: "u1"}
	gate := service.NewGate(service.GateDeps{Provider: provider, Identity: who, GuestQuota: 1})

	_, q := gate.CanStart(ctx)
	require.Equal(t, domain.TierPremium, q.Tier)
	provider.setPremium(false)

	who.set("")
	gate.EndSession(ctx)
	decision, q := gate.CanStart(ctx)
	assert.Equal(t, domain.TierGuest, q.Tier, "signing out drops premium")
	assert.Equal(t, domain.DecisionSoftLock, decision)

	who.set("u2")
	_, q = gate.CanStart(ctx)
	assert.Equal(t, domain.TierFree, q.Tier)
	assert.Equal(t, 1, q.Credits)

	checks := provider.checks.Load()
	who.set("u1")
	_, q = gate.CanStart(ctx)
	assert.Equal(t, domain.TierPremium, q.Tier)
	assert.Equal(t, checks, provider.checks.Load(), "the latch still holds for the account that proved premium")
}

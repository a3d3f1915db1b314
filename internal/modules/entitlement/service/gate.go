package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"studyquest/internal/modules/entitlement/domain"
	entitlementout "studyquest/internal/modules/entitlement/port/out"
	apperrors "studyquest/internal/platform/errors"
	"studyquest/internal/platform/logger"
)

// Gate enforces the per-visit session quota. The visit counter lives only in
// memory and resets when the process restarts.
type Gate struct {
	provider   entitlementout.Provider
	recorder   entitlementout.PurchaseRecorder
	identity   entitlementout.IdentitySource
	guestQuota int
	log        *logger.Logger
	checks     singleflight.Group

	mu            sync.Mutex
	visitSessions int
	premiumFor    string
}

type GateDeps struct {
	Provider   entitlementout.Provider
	Recorder   entitlementout.PurchaseRecorder
	Identity   entitlementout.IdentitySource
	GuestQuota int
	Log        *logger.Logger
}

func NewGate(deps GateDeps) *Gate {
	g := &Gate{
		provider:   deps.Provider,
		recorder:   deps.Recorder,
		identity:   deps.Identity,
		guestQuota: deps.GuestQuota,
		log:        deps.Log,
	}
	if g.guestQuota < 1 {
		g.guestQuota = domain.DefaultGuestQuota
	}
	if g.log == nil {
		g.log = logger.Nop()
	}
	return g
}

func (g *Gate) userID() (string, bool) {
	if g.identity == nil {
		return "", false
	}
	return g.identity.CurrentUserID()
}

// latched reports whether userID already proved premium in this process.
// Signing out or switching accounts falls through to a fresh check.
func (g *Gate) latched(userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return userID != "" && g.premiumFor == userID
}

func (g *Gate) visits() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visitSessions
}

// checkPremium asks the provider once per user for concurrent callers and
// latches a positive answer for that user.
func (g *Gate) checkPremium(ctx context.Context, userID string) (domain.PurchaseStatus, error) {
	v, err, _ := g.checks.Do(userID, func() (any, error) {
		return g.provider.CheckPurchaseStatus(ctx, userID)
	})
	if err != nil {
		return domain.PurchaseStatus{}, err
	}
	status := v.(domain.PurchaseStatus)
	if status.Premium() {
		g.mu.Lock()
		g.premiumFor = userID
		g.mu.Unlock()
	}
	return status, nil
}

// Quota resolves the tier and balance for the current identity. Provider
// failures degrade to the guest rule rather than blocking the user.
func (g *Gate) Quota(ctx context.Context) (domain.Quota, domain.PurchaseStatus) {
	q := domain.Quota{Tier: domain.TierGuest, VisitSessions: g.visits(), GuestQuota: g.guestQuota}
	userID, ok := g.userID()
	if ok && g.latched(userID) {
		q.Tier = domain.TierPremium
		return q, domain.PurchaseStatus{IsPremium: true}
	}
	if !ok || g.provider == nil {
		return q, domain.PurchaseStatus{}
	}

	status, err := g.checkPremium(ctx, userID)
	if err != nil {
		g.log.Warn("purchase check failed", "user_id", userID, "error", err)
		return q, domain.PurchaseStatus{}
	}
	if status.Premium() {
		q.Tier = domain.TierPremium
		return q, status
	}
	credits, err := g.provider.Credits(ctx, userID)
	if err != nil {
		g.log.Warn("credit lookup failed", "user_id", userID, "error", err)
		return q, status
	}
	q.Tier = domain.TierFree
	q.Credits = credits
	return q, status
}

func (g *Gate) CanStart(ctx context.Context) (domain.Decision, domain.Quota) {
	q, _ := g.Quota(ctx)
	decision := q.StartDecision()
	if decision == domain.DecisionSoftLock {
		g.log.Info("session start blocked", "tier", q.Tier, "visit_sessions", q.VisitSessions, "credits", q.Credits)
	}
	return decision, q
}

// EndSession counts a finished session against the visit and, for free
// users, spends one credit.
func (g *Gate) EndSession(ctx context.Context) (domain.Quota, bool) {
	g.mu.Lock()
	g.visitSessions++
	g.mu.Unlock()

	q, _ := g.Quota(ctx)
	if q.Tier != domain.TierFree {
		return q, false
	}
	userID, _ := g.userID()
	used, err := g.provider.UseCredit(ctx, userID)
	if err != nil {
		g.log.Warn("use credit failed", "user_id", userID, "error", err)
		return q, false
	}
	if used {
		q.Credits = max(q.Credits-1, 0)
	}
	return q, used
}

// Grant records a purchase for the signed-in user and latches premium for them.
func (g *Gate) Grant(ctx context.Context) (domain.Quota, domain.PurchaseStatus, error) {
	userID, ok := g.userID()
	if !ok {
		return domain.Quota{}, domain.PurchaseStatus{}, apperrors.ErrNoIdentity
	}
	if g.recorder == nil {
		return domain.Quota{}, domain.PurchaseStatus{}, apperrors.ErrProviderDisabled
	}
	if err := g.recorder.RecordPurchase(ctx, userID); err != nil {
		return domain.Quota{}, domain.PurchaseStatus{}, fmt.Errorf("record purchase: %w", err)
	}
	q, status := g.Quota(ctx)
	return q, status, nil
}

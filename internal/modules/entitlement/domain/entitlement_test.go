package domain_test

import (
	"testing"

	"studyquest/internal/modules/entitlement/domain"
)

func TestQuotaStartDecision(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		quota domain.Quota
		want  domain.Decision
	}{
		{"guest first", domain.Quota{Tier: domain.TierGuest, VisitSessions: 0, GuestQuota: 2}, domain.DecisionAllow},
		{"guest second", domain.Quota{Tier: domain.TierGuest, VisitSessions: 1, GuestQuota: 2}, domain.DecisionAllow},
		{"guest exhausted", domain.Quota{Tier: domain.TierGuest, VisitSessions: 2, GuestQuota: 2}, domain.DecisionSoftLock},
		{"free with credits", domain.Quota{Tier: domain.TierFree, VisitSessions: 9, Credits: 1}, domain.DecisionAllow},
		{"free empty", domain.Quota{Tier: domain.TierFree, Credits: 0}, domain.DecisionSoftLock},
		{"premium", domain.Quota{Tier: domain.TierPremium, VisitSessions: 50}, domain.DecisionAllow},
	}
	for _, tc := range cases {
		if got := tc.quota.StartDecision(); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestQuotaRemaining(t *testing.T) {
	t.Parallel()
	if got := (domain.Quota{Tier: domain.TierGuest, VisitSessions: 1, GuestQuota: 2}).Remaining(); got != 1 {
		t.Fatalf("expected 1 guest session left, got %d", got)
	}
	if got := (domain.Quota{Tier: domain.TierGuest, VisitSessions: 3, GuestQuota: 2}).Remaining(); got != 0 {
		t.Fatalf("expected clamp at 0, got %d", got)
	}
	if got := (domain.Quota{Tier: domain.TierPremium}).Remaining(); got != -1 {
		t.Fatalf("expected unlimited, got %d", got)
	}
}

func TestPurchaseStatusPremium(t *testing.T) {
	t.Parallel()
	if (domain.PurchaseStatus{}).Premium() {
		t.Fatalf("zero status must not be premium")
	}
	if !(domain.PurchaseStatus{HasLifetimeAccess: true}).Premium() {
		t.Fatalf("lifetime access counts as premium")
	}
}

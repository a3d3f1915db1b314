package domain

import "time"

type Tier string

const (
	TierGuest   Tier = "guest"
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

const (
	// DefaultGuestQuota is how many sessions a guest may finish per visit.
	DefaultGuestQuota = 2
	// DefaultCredits is the balance a new signed-in profile starts with.
	DefaultCredits = 2
	// PremiumCredits is written to the ledger on purchase so legacy readers of
	// the balance never see an exhausted premium account.
	PremiumCredits = 9999
)

// PurchaseStatus is the result of an external purchase check.
type PurchaseStatus struct {
	IsPremium         bool
	HasLifetimeAccess bool
	PurchaseDate      *time.Time
}

func (p PurchaseStatus) Premium() bool {
	return p.IsPremium || p.HasLifetimeAccess
}

type Decision string

const (
	DecisionAllow    Decision = "allow"
	DecisionSoftLock Decision = "soft-lock"
)

// Quota is the per-visit view the gate decides on.
type Quota struct {
	Tier          Tier
	VisitSessions int
	GuestQuota    int
	Credits       int
}

// StartDecision is checked before a session attempt enters book selection.
// Guests are locked once the visit counter reached the quota, free users once
// their credit balance is empty. Premium is never locked.
func (q Quota) StartDecision() Decision {
	switch q.Tier {
	case TierPremium:
		return DecisionAllow
	case TierFree:
		if q.Credits <= 0 {
			return DecisionSoftLock
		}
		return DecisionAllow
	default:
		if q.VisitSessions >= q.GuestQuota {
			return DecisionSoftLock
		}
		return DecisionAllow
	}
}

// GuestQuotaExhausted reports whether a guest just used the last session of
// the visit.
func (q Quota) GuestQuotaExhausted() bool {
	return q.Tier == TierGuest && q.VisitSessions >= q.GuestQuota
}

// Remaining is the number of sessions still available, or -1 for unlimited.
func (q Quota) Remaining() int {
	switch q.Tier {
	case TierPremium:
		return -1
	case TierFree:
		return max(q.Credits, 0)
	default:
		return max(q.GuestQuota-q.VisitSessions, 0)
	}
}

package out

import (
	"context"

	"studyquest/internal/modules/entitlement/domain"
)

// Provider is the external entitlement collaborator. Calls are made before
// or after a session, never during one.
type Provider interface {
	CheckPurchaseStatus(ctx context.Context, userID string) (domain.PurchaseStatus, error)
	// UseCredit decrements the balance. It returns false when none was left.
	UseCredit(ctx context.Context, userID string) (bool, error)
	Credits(ctx context.Context, userID string) (int, error)
}

// PurchaseRecorder stores the result of a completed purchase. Only local
// providers implement it.
type PurchaseRecorder interface {
	RecordPurchase(ctx context.Context, userID string) error
}

type IdentitySource interface {
	CurrentUserID() (string, bool)
}

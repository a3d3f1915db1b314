package usecase

import (
	"context"
	"time"

	"studyquest/internal/modules/entitlement/domain"
	"studyquest/internal/modules/entitlement/dto"
	entitlementin "studyquest/internal/modules/entitlement/port/in"
	entitlementout "studyquest/internal/modules/entitlement/port/out"
	"studyquest/internal/modules/entitlement/service"
)

type Interactor struct {
	gate     *service.Gate
	identity entitlementout.IdentitySource
}

func NewInteractor(gate *service.Gate, identity entitlementout.IdentitySource) entitlementin.Usecase {
	return &Interactor{gate: gate, identity: identity}
}

func (i *Interactor) statusOutput(q domain.Quota, status domain.PurchaseStatus) dto.StatusOutput {
	out := dto.StatusOutput{
		Tier:          string(q.Tier),
		Premium:       q.Tier == domain.TierPremium,
		Credits:       q.Credits,
		VisitSessions: q.VisitSessions,
		GuestQuota:    q.GuestQuota,
		Remaining:     q.Remaining(),
	}
	if i.identity != nil {
		out.UserID, _ = i.identity.CurrentUserID()
	}
	if status.PurchaseDate != nil {
		out.PurchaseDate = status.PurchaseDate.Format(time.DateOnly)
	}
	return out
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	q, status := i.gate.Quota(ctx)
	return i.statusOutput(q, status), nil
}

func (i *Interactor) CanStart(ctx context.Context) (dto.StartOutput, error) {
	decision, q := i.gate.CanStart(ctx)
	return dto.StartOutput{Decision: string(decision), Status: i.statusOutput(q, domain.PurchaseStatus{})}, nil
}

func (i *Interactor) EndSession(ctx context.Context) (dto.EndOutput, error) {
	q, used := i.gate.EndSession(ctx)
	return dto.EndOutput{
		Tier:                string(q.Tier),
		VisitSessions:       q.VisitSessions,
		GuestQuotaExhausted: q.GuestQuotaExhausted(),
		CreditUsed:          used,
	}, nil
}

func (i *Interactor) Grant(ctx context.Context) (dto.StatusOutput, error) {
	q, status, err := i.gate.Grant(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return i.statusOutput(q, status), nil
}

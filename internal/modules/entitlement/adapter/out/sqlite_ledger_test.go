package out_test

import (
	"context"
	"path/filepath"
	"testing"

	entitlementout "studyquest/internal/modules/entitlement/adapter/out"
	"studyquest/internal/modules/entitlement/domain"
	"studyquest/internal/platform/sqlitedb"
)

func TestSQLiteLedgerCreditsAndPurchase(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "studyquest.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ledger, err := entitlementout.NewSQLiteLedger(db)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	ctx := context.Background()

	credits, err := ledger.Credits(ctx, "u1")
	if err != nil || credits != domain.DefaultCredits {
		t.Fatalf("expected default credits, got %d err=%v", credits, err)
	}
	for i := 0; i < domain.DefaultCredits; i++ {
		used, err := ledger.UseCredit(ctx, "u1")
		if err != nil || !used {
			t.Fatalf("use credit %d: used=%v err=%v", i, used, err)
		}
	}
	used, err := ledger.UseCredit(ctx, "u1")
	if err != nil || used {
		t.Fatalf("expected exhausted balance, used=%v err=%v", used, err)
	}

	status, err := ledger.CheckPurchaseStatus(ctx, "u1")
	if err != nil || status.Premium() {
		t.Fatalf("expected non-premium, got %+v err=%v", status, err)
	}
	if err := ledger.RecordPurchase(ctx, "u1"); err != nil {
		t.Fatalf("record purchase: %v", err)
	}
	status, err = ledger.CheckPurchaseStatus(ctx, "u1")
	if err != nil || !status.IsPremium || !status.HasLifetimeAccess || status.PurchaseDate == nil {
		t.Fatalf("expected premium with date, got %+v err=%v", status, err)
	}
	if credits, _ := ledger.Credits(ctx, "u1"); credits != domain.PremiumCredits {
		t.Fatalf("expected premium credits, got %d", credits)
	}
	if credits, _ := ledger.Credits(ctx, "u2"); credits != domain.DefaultCredits {
		t.Fatalf("profiles must be per user, got %d", credits)
	}
}

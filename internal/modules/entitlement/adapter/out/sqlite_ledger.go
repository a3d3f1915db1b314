package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studyquest/internal/modules/entitlement/domain"
)

// SQLiteLedger is the local entitlement provider. Profiles are created lazily
// with the default credit balance on first lookup.
type SQLiteLedger struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteLedger(db *sql.DB) (*SQLiteLedger, error) {
	ledger := &SQLiteLedger{db: db, now: time.Now}
	if err := ledger.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return ledger, nil
}

func (l *SQLiteLedger) ensureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS profiles (
  user_id TEXT PRIMARY KEY,
  credits INTEGER NOT NULL DEFAULT %d,
  is_premium INTEGER NOT NULL DEFAULT 0,
  has_lifetime_access INTEGER NOT NULL DEFAULT 0,
  purchase_date TEXT
);
`, domain.DefaultCredits)
	if _, err := l.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (l *SQLiteLedger) ensureProfile(ctx context.Context, userID string) error {
	if _, err := l.db.ExecContext(ctx, `INSERT OR IGNORE INTO profiles (user_id) VALUES (?)`, userID); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (l *SQLiteLedger) CheckPurchaseStatus(ctx context.Context, userID string) (domain.PurchaseStatus, error) {
	if err := l.ensureProfile(ctx, userID); err != nil {
		return domain.PurchaseStatus{}, err
	}
	var (
		premium, lifetime bool
		purchased         sql.NullString
	)
	err := l.db.QueryRowContext(ctx,
		`SELECT is_premium, has_lifetime_access, purchase_date FROM profiles WHERE user_id = ?`, userID,
	).Scan(&premium, &lifetime, &purchased)
	if err != nil {
		return domain.PurchaseStatus{}, fmt.Errorf("read profile: %w", err)
	}
	status := domain.PurchaseStatus{IsPremium: premium, HasLifetimeAccess: lifetime}
	if purchased.Valid {
		if at, err := time.Parse(time.RFC3339, purchased.String); err == nil {
			status.PurchaseDate = &at
		}
	}
	return status, nil
}

func (l *SQLiteLedger) UseCredit(ctx context.Context, userID string) (bool, error) {
	if err := l.ensureProfile(ctx, userID); err != nil {
		return false, err
	}
	res, err := l.db.ExecContext(ctx, `UPDATE profiles SET credits = credits - 1 WHERE user_id = ? AND credits > 0`, userID)
	if err != nil {
		return false, fmt.Errorf("use credit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("use credit: %w", err)
	}
	return n == 1, nil
}

func (l *SQLiteLedger) Credits(ctx context.Context, userID string) (int, error) {
	if err := l.ensureProfile(ctx, userID); err != nil {
		return 0, err
	}
	var credits int
	if err := l.db.QueryRowContext(ctx, `SELECT credits FROM profiles WHERE user_id = ?`, userID).Scan(&credits); err != nil {
		return 0, fmt.Errorf("read credits: %w", err)
	}
	return credits, nil
}

// RecordPurchase marks the profile premium with lifetime access.
func (l *SQLiteLedger) RecordPurchase(ctx context.Context, userID string) error {
	if err := l.ensureProfile(ctx, userID); err != nil {
		return err
	}
	_, err := l.db.ExecContext(ctx,
		`UPDATE profiles SET is_premium = 1, has_lifetime_access = 1, credits = ?, purchase_date = ? WHERE user_id = ?`,
		domain.PremiumCredits, l.now().UTC().Format(time.RFC3339), userID,
	)
	if err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}
	return nil
}

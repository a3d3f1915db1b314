package service

import (
	"context"
	"errors"
	"fmt"

	"studyquest/internal/modules/identity/domain"
	identityout "studyquest/internal/modules/identity/port/out"
	"studyquest/internal/platform/clock"
	apperrors "studyquest/internal/platform/errors"
	"studyquest/internal/platform/id"
)

type AuthService struct {
	clock    clock.Clock
	ids      id.Generator
	accounts identityout.AccountStore
	hasher   identityout.PasswordHasher
}

func NewAuthService(clk clock.Clock, ids id.Generator, accounts identityout.AccountStore, hasher identityout.PasswordHasher) *AuthService {
	return &AuthService{clock: clk, ids: ids, accounts: accounts, hasher: hasher}
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (domain.Identity, error) {
	if err := domain.ValidateCredentials(email, password); err != nil {
		return domain.Identity{}, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}
	now := s.clock.Now()
	account := domain.Account{
		ID:           s.ids.New(),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: account.ID, Email: account.Email, SignedInAt: now}, nil
}

// SignIn reports ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	if err := domain.ValidateCredentials(email, password); err != nil {
		return domain.Identity{}, err
	}
	account, err := s.accounts.FindByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Identity{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Identity{}, err
	}
	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return domain.Identity{}, apperrors.ErrInvalidCredentials
	}
	return domain.Identity{UserID: account.ID, Email: account.Email, SignedInAt: s.clock.Now()}, nil
}

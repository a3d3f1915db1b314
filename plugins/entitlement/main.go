package main

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/go-plugin"

	entitlementrpc "studyquest/internal/modules/entitlement/adapter/out/rpc"
)

const startingCredits = 2

// server keeps balances in memory. User ids prefixed "premium-" are treated
// as lifetime purchasers so hosts can exercise the premium path.
type server struct {
	mu      sync.Mutex
	credits map[string]int32
}

func (s *server) balance(userID string) int32 {
	if _, ok := s.credits[userID]; !ok {
		s.credits[userID] = startingCredits
	}
	return s.credits[userID]
}

func (s *server) CheckPurchaseStatus(_ context.Context, in *entitlementrpc.UserRequest) (*entitlementrpc.PurchaseStatusResponse, error) {
	if strings.HasPrefix(in.UserID, "premium-") {
		return &entitlementrpc.PurchaseStatusResponse{IsPremium: true, HasLifetimeAccess: true, PurchaseDate: "2024-01-01T00:00:00Z"}, nil
	}
	return &entitlementrpc.PurchaseStatusResponse{}, nil
}

func (s *server) UseCredit(_ context.Context, in *entitlementrpc.UserRequest) (*entitlementrpc.UseCreditResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balance(in.UserID) <= 0 {
		return &entitlementrpc.UseCreditResponse{Used: false}, nil
	}
	s.credits[in.UserID]--
	return &entitlementrpc.UseCreditResponse{Used: true}, nil
}

func (s *server) Credits(_ context.Context, in *entitlementrpc.UserRequest) (*entitlementrpc.CreditsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &entitlementrpc.CreditsResponse{Credits: s.balance(in.UserID)}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: entitlementrpc.HandshakeConfig,
		Plugins:         entitlementrpc.PluginMap(&server{credits: map[string]int32{}}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}

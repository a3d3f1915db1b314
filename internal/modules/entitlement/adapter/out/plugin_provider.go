package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	entitlementrpc "studyquest/internal/modules/entitlement/adapter/out/rpc"
	"studyquest/internal/modules/entitlement/domain"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginProvider talks to an external entitlement binary over go-plugin gRPC.
// The process is started on first use and kept until Close.
type PluginProvider struct {
	binary string

	mu     sync.Mutex
	client *plugin.Client
	rpc    entitlementrpc.EntitlementClient
}

func NewPluginProvider(binary string) *PluginProvider {
	return &PluginProvider{binary: binary}
}

func (p *PluginProvider) connect() (entitlementrpc.EntitlementClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rpc != nil && p.client != nil && !p.client.Exited() {
		return p.rpc, nil
	}
	if p.client != nil {
		p.client.Kill()
		p.client, p.rpc = nil, nil
	}

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  entitlementrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          entitlementrpc.PluginMap(nil),
		Cmd:              exec.Command(p.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start entitlement plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(entitlementrpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense entitlement plugin: %w", err)
	}
	typed, ok := raw.(entitlementrpc.EntitlementClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("entitlement rpc client type mismatch")
	}
	p.client, p.rpc = client, typed
	return typed, nil
}

func callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, defaultCallTimeout)
}

func (p *PluginProvider) CheckPurchaseStatus(ctx context.Context, userID string) (domain.PurchaseStatus, error) {
	client, err := p.connect()
	if err != nil {
		return domain.PurchaseStatus{}, err
	}
	callCtx, cancel := callContext(ctx)
	defer cancel()
	resp, err := client.CheckPurchaseStatus(callCtx, &entitlementrpc.UserRequest{UserID: userID})
	if err != nil {
		return domain.PurchaseStatus{}, fmt.Errorf("check purchase status: %w", err)
	}
	status := domain.PurchaseStatus{IsPremium: resp.IsPremium, HasLifetimeAccess: resp.HasLifetimeAccess}
	if resp.PurchaseDate != "" {
		if at, err := time.Parse(time.RFC3339, resp.PurchaseDate); err == nil {
			status.PurchaseDate = &at
		}
	}
	return status, nil
}

func (p *PluginProvider) UseCredit(ctx context.Context, userID string) (bool, error) {
	client, err := p.connect()
	if err != nil {
		return false, err
	}
	callCtx, cancel := callContext(ctx)
	defer cancel()
	resp, err := client.UseCredit(callCtx, &entitlementrpc.UserRequest{UserID: userID})
	if err != nil {
		return false, fmt.Errorf("use credit: %w", err)
	}
	return resp.Used, nil
}

func (p *PluginProvider) Credits(ctx context.Context, userID string) (int, error) {
	client, err := p.connect()
	if err != nil {
		return 0, err
	}
	callCtx, cancel := callContext(ctx)
	defer cancel()
	resp, err := client.Credits(callCtx, &entitlementrpc.UserRequest{UserID: userID})
	if err != nil {
		return 0, fmt.Errorf("read credits: %w", err)
	}
	return int(resp.Credits), nil
}

// Close stops the plugin process if one is running.
func (p *PluginProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Kill()
		p.client, p.rpc = nil, nil
	}
}

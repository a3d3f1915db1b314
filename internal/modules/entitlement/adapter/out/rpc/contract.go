package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey  = "entitlement"
	serviceName   = "studyquest.entitlement.v1.EntitlementProvider"
	jsonCodecName = "json"

	methodCheckPurchaseStatus = "/" + serviceName + "/CheckPurchaseStatus"
	methodUseCredit           = "/" + serviceName + "/UseCredit"
	methodCredits             = "/" + serviceName + "/Credits"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "STUDYQUEST_ENTITLEMENT_PLUGIN",
	MagicCookieValue: "studyquest",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type UserRequest struct {
	UserID string `json:"user_id"`
}

type PurchaseStatusResponse struct {
	IsPremium         bool   `json:"is_premium"`
	HasLifetimeAccess bool   `json:"has_lifetime_access"`
	PurchaseDate      string `json:"purchase_date,omitempty"`
}

type UseCreditResponse struct {
	Used bool `json:"used"`
}

type CreditsResponse struct {
	Credits int32 `json:"credits"`
}

type EntitlementServer interface {
	CheckPurchaseStatus(ctx context.Context, in *UserRequest) (*PurchaseStatusResponse, error)
	UseCredit(ctx context.Context, in *UserRequest) (*UseCreditResponse, error)
	Credits(ctx context.Context, in *UserRequest) (*CreditsResponse, error)
}

type EntitlementClient interface {
	CheckPurchaseStatus(ctx context.Context, in *UserRequest) (*PurchaseStatusResponse, error)
	UseCredit(ctx context.Context, in *UserRequest) (*UseCreditResponse, error)
	Credits(ctx context.Context, in *UserRequest) (*CreditsResponse, error)
}

type entitlementClient struct {
	conn *grpc.ClientConn
}

func NewEntitlementClient(conn *grpc.ClientConn) EntitlementClient {
	return &entitlementClient{conn: conn}
}

func (c *entitlementClient) CheckPurchaseStatus(ctx context.Context, in *UserRequest) (*PurchaseStatusResponse, error) {
	out := &PurchaseStatusResponse{}
	if err := c.conn.Invoke(ctx, methodCheckPurchaseStatus, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *entitlementClient) UseCredit(ctx context.Context, in *UserRequest) (*UseCreditResponse, error) {
	out := &UseCreditResponse{}
	if err := c.conn.Invoke(ctx, methodUseCredit, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *entitlementClient) Credits(ctx context.Context, in *UserRequest) (*CreditsResponse, error) {
	out := &CreditsResponse{}
	if err := c.conn.Invoke(ctx, methodCredits, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unaryHandler adapts a typed server method to grpc's MethodDesc handler.
func unaryHandler[Resp any](fullMethod string, call func(context.Context, *UserRequest) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := &UserRequest{}
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*UserRequest)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterEntitlementServer(server grpc.ServiceRegistrar, impl EntitlementServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*EntitlementServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "CheckPurchaseStatus", Handler: unaryHandler(methodCheckPurchaseStatus, impl.CheckPurchaseStatus)},
			{MethodName: "UseCredit", Handler: unaryHandler(methodUseCredit, impl.UseCredit)},
			{MethodName: "Credits", Handler: unaryHandler(methodCredits, impl.Credits)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/entitlement-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl EntitlementServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterEntitlementServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewEntitlementClient(conn), nil
}

func PluginMap(impl EntitlementServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}

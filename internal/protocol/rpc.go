package protocol

import (
	"context"
	"errors"
	"net/rpc"
	"time"

	"github.com/hashicorp/go-plugin"

	"github.com/git-pkgs/adoptium/internal/core"
	"github.com/git-pkgs/adoptium/internal/platform"
)

// Provider is the in-process form of the plugin contract. *tool.Tool
// implements it.
type Provider interface {
	RegisterTool() core.ToolMetadata
	LoadVersions(ctx context.Context, triple platform.Triple) (core.VersionList, error)
	DownloadPrebuilt(ctx context.Context, triple platform.Triple, version string) (*core.Artifact, error)
	LocateExecutables(triple platform.Triple) core.ExecutableSet
}

// Tool is the plugin contract as seen by a host. Every call can fail when
// the plugin runs in another process.
type Tool interface {
	RegisterTool(ctx context.Context) (core.ToolMetadata, error)
	LoadVersions(ctx context.Context, triple platform.Triple) (core.VersionList, error)
	DownloadPrebuilt(ctx context.Context, triple platform.Triple, version string) (*core.Artifact, error)
	LocateExecutables(ctx context.Context, triple platform.Triple) (core.ExecutableSet, error)
}

// Local adapts an in-process Provider to Tool.
func Local(p Provider) Tool {
	return local{p}
}

type local struct {
	p Provider
}

func (l local) RegisterTool(context.Context) (core.ToolMetadata, error) {
	return l.p.RegisterTool(), nil
}

func (l local) LoadVersions(ctx context.Context, triple platform.Triple) (core.VersionList, error) {
	return l.p.LoadVersions(ctx, triple)
}

func (l local) DownloadPrebuilt(ctx context.Context, triple platform.Triple, version string) (*core.Artifact, error) {
	return l.p.DownloadPrebuilt(ctx, triple, version)
}

func (l local) LocateExecutables(_ context.Context, triple platform.Triple) (core.ExecutableSet, error) {
	return l.p.LocateExecutables(triple), nil
}

// ToolPlugin implements plugin.Plugin for the net/rpc protocol.
type ToolPlugin struct {
	plugin.Plugin
	Impl Provider
}

// Server returns an RPC server for this plugin.
func (p *ToolPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &RPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ToolPlugin) Client(_ *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &RPCClient{client: c}, nil
}

// Error kinds carried across the RPC boundary so callers can still use
// errors.Is on the host side.
const (
	kindUnsupportedPlatform = "unsupported_platform"
	kindNoBinaries          = "no_binaries"
	kindUnsupportedVersion  = "unsupported_version"
	kindUpstreamUnreachable = "upstream_unreachable"
	kindMalformedResponse   = "malformed_response"
	kindOther               = "other"
)

// RPCError is an error returned by the plugin.
type RPCError struct {
	Kind    string
	Message string
}

func (e *RPCError) Error() string {
	return e.Message
}

func (e *RPCError) Unwrap() error {
	switch e.Kind {
	case kindUnsupportedPlatform:
		return core.ErrUnsupportedPlatform
	case kindNoBinaries:
		return core.ErrNoBinaries
	case kindUnsupportedVersion:
		return core.ErrUnsupportedVersion
	case kindUpstreamUnreachable:
		return core.ErrUpstreamUnreachable
	case kindMalformedResponse:
		return core.ErrMalformedResponse
	default:
		return nil
	}
}

func toRPCError(err error) *RPCError {
	if err == nil {
		return nil
	}
	kind := kindOther
	switch {
	case errors.Is(err, core.ErrUnsupportedPlatform):
		kind = kindUnsupportedPlatform
	case errors.Is(err, core.ErrNoBinaries):
		kind = kindNoBinaries
	case errors.Is(err, core.ErrUnsupportedVersion):
		kind = kindUnsupportedVersion
	case errors.Is(err, core.ErrMalformedResponse):
		kind = kindMalformedResponse
	case errors.Is(err, core.ErrUpstreamUnreachable):
		kind = kindUpstreamUnreachable
	}
	return &RPCError{Kind: kind, Message: err.Error()}
}

// LoadVersionsArgs is the request for LoadVersions. A non-zero Deadline
// bounds the work done in the plugin.
type LoadVersionsArgs struct {
	Triple   platform.Triple
	Deadline time.Time
}

// LoadVersionsResponse is the reply for LoadVersions.
type LoadVersionsResponse struct {
	Versions core.VersionList
	Err      *RPCError
}

// DownloadPrebuiltArgs is the request for DownloadPrebuilt.
type DownloadPrebuiltArgs struct {
	Triple   platform.Triple
	Version  string
	Deadline time.Time
}

// DownloadPrebuiltResponse is the reply for DownloadPrebuilt.
type DownloadPrebuiltResponse struct {
	Artifact *core.Artifact
	Err      *RPCError
}

// LocateExecutablesArgs is the request for LocateExecutables.
type LocateExecutablesArgs struct {
	Triple platform.Triple
}

// RPCServer is the plugin side of the RPC connection.
type RPCServer struct {
	Impl Provider
}

// requestContext returns the context a plugin call runs under.
func requestContext(deadline time.Time) (context.Context, context.CancelFunc) {
	if deadline.IsZero() {
		return context.WithCancel(context.Background())
	}
	return context.WithDeadline(context.Background(), deadline)
}

// RegisterTool implements the RPC method for plugin metadata.
func (s *RPCServer) RegisterTool(_ interface{}, resp *core.ToolMetadata) error {
	*resp = s.Impl.RegisterTool()
	return nil
}

// LoadVersions implements the RPC method for version listing.
func (s *RPCServer) LoadVersions(args LoadVersionsArgs, resp *LoadVersionsResponse) error {
	ctx, cancel := requestContext(args.Deadline)
	defer cancel()

	versions, err := s.Impl.LoadVersions(ctx, args.Triple)
	*resp = LoadVersionsResponse{Versions: versions, Err: toRPCError(err)}
	return nil
}

// DownloadPrebuilt implements the RPC method for artifact resolution.
func (s *RPCServer) DownloadPrebuilt(args DownloadPrebuiltArgs, resp *DownloadPrebuiltResponse) error {
	ctx, cancel := requestContext(args.Deadline)
	defer cancel()

	artifact, err := s.Impl.DownloadPrebuilt(ctx, args.Triple, args.Version)
	*resp = DownloadPrebuiltResponse{Artifact: artifact, Err: toRPCError(err)}
	return nil
}

// LocateExecutables implements the RPC method for executable lookup.
func (s *RPCServer) LocateExecutables(args LocateExecutablesArgs, resp *core.ExecutableSet) error {
	*resp = s.Impl.LocateExecutables(args.Triple)
	return nil
}

// RPCClient is the host side of the RPC connection. It implements Tool.
type RPCClient struct {
	client *rpc.Client
}

// RegisterTool calls the remote RegisterTool method.
func (c *RPCClient) RegisterTool(ctx context.Context) (core.ToolMetadata, error) {
	var meta core.ToolMetadata
	if err := c.call(ctx, "Plugin.RegisterTool", new(interface{}), &meta); err != nil {
		return core.ToolMetadata{}, err
	}
	return meta, nil
}

// LoadVersions calls the remote LoadVersions method.
func (c *RPCClient) LoadVersions(ctx context.Context, triple platform.Triple) (core.VersionList, error) {
	deadline, _ := ctx.Deadline()
	args := LoadVersionsArgs{Triple: triple, Deadline: deadline}

	var resp LoadVersionsResponse
	if err := c.call(ctx, "Plugin.LoadVersions", args, &resp); err != nil {
		return core.VersionList{}, err
	}
	if resp.Err != nil {
		return core.VersionList{}, resp.Err
	}
	return resp.Versions, nil
}

// DownloadPrebuilt calls the remote DownloadPrebuilt method.
func (c *RPCClient) DownloadPrebuilt(ctx context.Context, triple platform.Triple, version string) (*core.Artifact, error) {
	deadline, _ := ctx.Deadline()
	args := DownloadPrebuiltArgs{Triple: triple, Version: version, Deadline: deadline}

	var resp DownloadPrebuiltResponse
	if err := c.call(ctx, "Plugin.DownloadPrebuilt", args, &resp); err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Artifact, nil
}

// LocateExecutables calls the remote LocateExecutables method.
func (c *RPCClient) LocateExecutables(ctx context.Context, triple platform.Triple) (core.ExecutableSet, error) {
	var set core.ExecutableSet
	if err := c.call(ctx, "Plugin.LocateExecutables", LocateExecutablesArgs{Triple: triple}, &set); err != nil {
		return core.ExecutableSet{}, err
	}
	return set, nil
}

// call issues an RPC and gives up waiting when ctx is done.
func (c *RPCClient) call(ctx context.Context, method string, args, reply interface{}) error {
	done := c.client.Go(method, args, reply, make(chan *rpc.Call, 1)).Done
	select {
	case call := <-done:
		return call.Error
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Package mcp exposes a provider tree's actions to MCP clients. It is the
// host-runtime side of the registry: it applies network filtering, turns
// descriptors into MCP tools, and surfaces validation and execution failures
// as tool error results.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/halcyonlabs/actionkit/internal/actions"
	"github.com/halcyonlabs/actionkit/internal/platform/id"
	"github.com/halcyonlabs/actionkit/internal/wallet"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "actionkit"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

var tracer = otel.Tracer("actionkit/mcp")

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	// Provider is the root of the provider tree to expose.
	Provider *actions.Provider
	// Wallet is bound into every wallet-dependent action for the lifetime
	// of the server.
	Wallet wallet.Context
	// Network is the active network; providers that do not support it are
	// excluded wholesale.
	Network wallet.Network

	Transport TransportKind
	HTTPAddr  string
}

// NewServer builds an MCP server exposing every action of cfg.Provider as a
// tool, bound to cfg.Wallet. When the provider does not support the active
// network no tools are registered.
func NewServer(cfg Config) (*mcp.Server, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("provider is required")
	}

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	if !cfg.Provider.SupportsNetwork(cfg.Network) {
		log.Printf("provider %q does not support network %s/%s; exposing no tools",
			cfg.Provider.Name(), cfg.Network.ProtocolFamily, cfg.Network.NetworkID)
		return server, nil
	}

	descriptors, err := cfg.Provider.Actions(cfg.Wallet)
	if err != nil {
		return nil, fmt.Errorf("collect actions from provider %q: %w", cfg.Provider.Name(), err)
	}

	for _, descriptor := range descriptors {
		server.AddTool(&mcp.Tool{
			Name:        descriptor.Name,
			Description: descriptor.Description,
			InputSchema: descriptor.Schema,
		}, toolHandler(descriptor))
	}

	return server, nil
}

// toolHandler adapts one descriptor into an MCP tool handler. Each call gets
// an invocation id and a span; action failures become tool error results
// rather than protocol errors.
func toolHandler(descriptor actions.Descriptor) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		invocationID, err := id.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate invocation id: %w", err)
		}

		ctx, span := tracer.Start(ctx, "action."+descriptor.Name)
		defer span.End()
		span.SetAttributes(
			attribute.String("action.name", descriptor.Name),
			attribute.String("invocation.id", invocationID),
		)

		output, err := descriptor.Invoke(ctx, req.Params.Arguments)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: output}},
		}, nil
	}
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := NewServer(cfg)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return serve(ctx, server, &mcp.StdioTransport{})
	case TransportHTTP:
		return serveHTTP(ctx, server, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serve runs the server over the provided transport, treating context
// cancellation as a clean stop.
func serve(ctx context.Context, server *mcp.Server, transport mcp.Transport) error {
	err := server.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// serveHTTP serves the MCP server over streamable HTTP until the context
// ends.
func serveHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	// Default to localhost-only binding for security
	if addr == "" {
		addr = "localhost:8081"
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	httpServer := &http.Server{Addr: addr, Handler: handler}
	errs := make(chan error, 1)
	go func() {
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP over HTTP: %w", err)
	}
}

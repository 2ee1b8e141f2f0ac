package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Services contains all domain services needed by MCP.
type Services struct {
	Layout   LayoutService
	Floors   FloorService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Verifier      TokenVerifier
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	DefaultFloor  string
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "seatmap",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio mode never authenticates (local use only)
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Verifier))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	handler := NewHandler(cfg.Services.Layout, cfg.Services.Floors, cfg.Services.Activity, cfg.DefaultFloor)
	registerTools(server, handler, cfg.Logger)

	return server
}

// registerTools exposes every catalog entry as an MCP tool backed by the handler.
func registerTools(server *sdkmcp.Server, handler *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			out, err := handler.Handle(ctx, name, args)
			if err != nil {
				return toolError(logger, name, err), nil
			}
			data, err := json.Marshal(out)
			if err != nil {
				return nil, err
			}
			return &sdkmcp.CallToolResult{
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
			}, nil
		})
	}
}

// toolError reports a failed call inside the tool result so the model can
// read the code and recovery hint.
func toolError(logger *slog.Logger, tool string, err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	if apiErr == nil {
		logger.Error("tool failed", "tool", tool, "error", err)
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/seatmap/internal/mcp"
	"github.com/rpggio/seatmap/internal/transport"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the layout and serve it over MCP",
		Long: `Load the layout from the configured store and serve the editor.

In stdio mode the MCP server speaks on stdin/stdout and logs to stderr.
In http mode the router serves /mcp (streamable MCP), /rpc (JSON-RPC),
/layout and /health.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "" {
				c.cfg.Transport.Mode = mode
				if err := c.cfg.Validate(); err != nil {
					return err
				}
			}
			return c.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&mode, "transport", "t", "", "transport mode: stdio or http (overrides config)")
	return cmd
}

func (c *CLI) serve(ctx context.Context) error {
	cfg := c.cfg
	stdio := cfg.Transport.Mode == "stdio"

	logger, closeLog, err := newLogger(cfg.Log.Level, cfg.Log.Path, stdio)
	if err != nil {
		return fmt.Errorf("log file error: %w", err)
	}
	defer closeLog()

	a, err := openApp(ctx, cfg, "", logger)
	if err != nil {
		logger.Error("failed to open stores", "error", err)
		return err
	}
	defer a.Close()

	opened, err := a.layout.Open(ctx)
	if err != nil {
		logger.Error("failed to load layout", "error", err)
		return err
	}
	logger.Info("edit session started", "session_id", opened.SessionID, "items", opened.Loaded)

	var verifier mcp.TokenVerifier
	if cfg.Auth.Enabled {
		verifier = transport.StaticToken(cfg.Auth.Token)
	}
	services := mcp.Services{Layout: a.layout, Floors: a.floors, Activity: a.activity}
	mcpServer := mcp.NewServer(mcp.Config{
		Services:      services,
		Verifier:      verifier,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		DefaultFloor:  cfg.Layout.DefaultFloor,
		Version:       version,
		Logger:        logger,
	})

	if stdio {
		return runStdio(ctx, logger, mcpServer)
	}

	handler := mcp.NewHandler(a.layout, a.floors, a.activity, cfg.Layout.DefaultFloor)
	opts := transport.Options{
		Handler: handler,
		Layout:  a.layout,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(r *http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
		),
		Logger: logger,
	}
	if cfg.Auth.Enabled {
		opts.Auth = transport.AuthMiddleware(transport.StaticToken(cfg.Auth.Token))
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return runHTTP(ctx, logger, addr, transport.NewServer(opts))
}

func runStdio(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or ctx is cancelled
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrUnauthorized is returned when a request carries no valid bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(verifier TokenVerifier) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("%w: missing headers", ErrUnauthorized)
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
			}
			if verifier == nil {
				return nil, fmt.Errorf("%w: no token configured", ErrUnauthorized)
			}
			if err := verifier.VerifyToken(ctx, token); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
			}
			return next(ctx, method, req)
		}
	}
}

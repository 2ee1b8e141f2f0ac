package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/seatmap/internal/domain/editor"
)

// MCPHandler handles MCP method dispatch.
type MCPHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// LayoutSource provides the render state served at /layout.
type LayoutSource interface {
	Snapshot(ctx context.Context) (editor.Snapshot, error)
}

// codedError is implemented by errors that carry a stable domain code.
type codedError interface {
	error
	CodeValue() string
	RecoveryHintValue() string
}

// Options configures the HTTP router.
type Options struct {
	Handler MCPHandler
	Layout  LayoutSource
	// Auth guards /rpc and /layout; nil leaves them open.
	Auth func(http.Handler) http.Handler
	// MCP is the streamable MCP endpoint, mounted at /mcp when set. It
	// authenticates inside the MCP server.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	handler MCPHandler
	layout  LayoutSource
	logger  *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{handler: opts.Handler, layout: opts.Layout, logger: opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(SessionMiddleware)
	r.Use(RequestLogger(opts.Logger))

	r.Get("/health", srv.handleHealth)
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		r.Post("/rpc", srv.handleRPC)
		r.Get("/layout", srv.handleLayout)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if s.layout == nil {
		http.Error(w, "layout not available", http.StatusServiceUnavailable)
		return
	}
	snap, err := s.layout.Snapshot(r.Context())
	if err != nil {
		s.logger.Warn("layout snapshot failed", "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		if errors.Is(err, ErrParse) {
			WriteError(w, nil, ErrParseCode, "parse error", nil)
			return
		}
		WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
		return
	}

	result, err := s.handler.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		code, data := rpcError(err)
		if code == ErrInternal {
			s.logger.Error("rpc call failed", "method", req.Method, "error", err)
		}
		WriteError(w, req.ID, code, err.Error(), data)
		return
	}

	WriteResult(w, req.ID, result)
}

// rpcError picks the JSON-RPC code for a handler error.
func rpcError(err error) (int, any) {
	var coded codedError
	if !errors.As(err, &coded) {
		return ErrInternal, nil
	}
	data := map[string]string{"code": coded.CodeValue()}
	if hint := coded.RecoveryHintValue(); hint != "" {
		data["recovery_hint"] = hint
	}
	switch coded.CodeValue() {
	case "UNKNOWN_METHOD":
		return ErrMethodNotFound, data
	case "INVALID_PARAMS":
		return ErrInvalidParams, data
	default:
		return ErrServer, data
	}
}

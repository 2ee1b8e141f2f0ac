// Package testserver runs the full HTTP stack over an in-memory SQLite
// store for end-to-end tests.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/editor"
	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/session"
	"github.com/rpggio/seatmap/internal/mcp"
	"github.com/rpggio/seatmap/internal/sqlite"
	"github.com/rpggio/seatmap/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Layout *session.Service
	Token  string
}

// New starts a server with bearer auth on token. opts seeds the editor.
func New(t *testing.T, token string, opts editor.Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	floorSvc := floor.NewService(sqlite.NewFloorRepository(db), activitySvc, nil)
	layout := session.NewService(editor.New(opts), sqlite.NewFurnitureRepository(db), activitySvc, nil)
	_, err = layout.Open(context.Background())
	require.NoError(t, err)

	verifier := transport.StaticToken(token)
	mcpServer := mcp.NewServer(mcp.Config{
		Services:      mcp.Services{Layout: layout, Floors: floorSvc, Activity: activitySvc},
		Verifier:      verifier,
		AuthEnabled:   true,
		TransportMode: "http",
		DefaultFloor:  opts.DefaultFloor,
	})
	router := transport.NewServer(transport.Options{
		Handler: mcp.NewHandler(layout, floorSvc, activitySvc, opts.DefaultFloor),
		Layout:  layout,
		Auth:    transport.AuthMiddleware(verifier),
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
		),
	})
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server: server,
		DB:     db,
		Layout: layout,
		Token:  token,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// Call posts a JSON-RPC request to /rpc and decodes the response.
func (ts *TestServer) Call(t *testing.T, method string, params any) transport.Response {
	t.Helper()

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/rpc", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out transport.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Result calls method, requires success and decodes the result into out.
func (ts *TestServer) Result(t *testing.T, method string, params any, out any) {
	t.Helper()
	resp := ts.Call(t, method, params)
	require.Nil(t, resp.Error, "%s failed: %+v", method, resp.Error)
	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

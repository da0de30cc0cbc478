package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherNode_Go/internal/authority"
	"github.com/osse101/GatherNode_Go/internal/catalog"
	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/database/memory"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/hub"
)

const testAPIKey = "test-key"

type testServer struct {
	*httptest.Server
	svc authority.Service
	clk *clock.Fake
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	clk := clock.NewFake(epoch)
	bus := event.NewMemoryBus()
	svc := authority.NewService(memory.NewDepletionRepository(), catalog.MustLoad(), bus, clk)
	h := hub.NewHub()
	h.Start()
	hub.NewSubscriber(h, bus).Subscribe()

	srv := NewServer(Config{APIKey: testAPIKey}, nil, svc, h)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
		_ = svc.Shutdown(ctx)
	})
	return &testServer{Server: ts, svc: svc, clk: clk}
}

func (ts *testServer) get(t *testing.T, path string, withKey bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest("GET", ts.URL+path, nil)
	require.NoError(t, err)
	if withKey {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_Routes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path    string
		withKey bool
		want    int
	}{
		{"/healthz", false, http.StatusOK},
		{"/readyz", false, http.StatusOK},
		{"/version", false, http.StatusOK},
		{"/metrics", false, http.StatusOK},
		{"/swagger/doc.json", false, http.StatusOK},
		{"/api/v1/nodes/depleted", false, http.StatusUnauthorized},
		{"/api/v1/nodes/depleted", true, http.StatusOK},
		{"/api/v1/unknown", true, http.StatusNotFound},
	}
	for _, tt := range tests {
		resp := ts.get(t, tt.path, tt.withKey)
		assert.Equal(t, tt.want, resp.StatusCode, "%s key=%v", tt.path, tt.withKey)
		assert.Equal(t, HeaderValueNoSniff, resp.Header.Get(HeaderContentType), tt.path)
	}
}

func TestServer_RespawnEndpoint(t *testing.T) {
	ts := newTestServer(t)
	rock := domain.NewNodeKey(3, 4)
	_, applied, err := ts.svc.Deplete(context.Background(), domain.NewDepletionRequest("alice", "ore_copper", rock, 0))
	require.NoError(t, err)
	require.True(t, applied)

	req, err := http.NewRequest("POST", ts.URL+"/api/v1/nodes/respawn", strings.NewReader(`{"x":3,"y":4}`))
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	listing := ts.get(t, "/api/v1/nodes/depleted", true)
	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(listing.Body).Decode(&body))
	assert.Zero(t, body.Count)
}

func TestServer_WebSocketThroughMiddleware(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?player=alice"

	_, resp, err := websocket.Dial(ctx, url, nil)
	require.Error(t, err, "missing key")
	if resp != nil {
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		HTTPHeader: http.Header{HeaderAPIKey: []string{testAPIKey}},
	})
	require.NoError(t, err)
	defer conn.CloseNow()

	require.NoError(t, wsjson.Write(ctx, conn, domain.NewActionRequest("alice", "tree_normal", domain.NewNodeKey(1, 1), "chop")))
	var reply domain.Message
	require.NoError(t, wsjson.Read(ctx, conn, &reply))
	assert.Equal(t, domain.KindActionResponse, reply.Kind)
	assert.True(t, reply.Approved)
}

func TestServer_EventStream(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/events", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "id:") || strings.HasPrefix(line, "event:"), line)
}

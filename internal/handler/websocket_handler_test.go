package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubscribers struct {
	workspaceID int32
	err         error
}

func (s *stubSubscribers) Authorize(ctx context.Context, token string) (int32, error) {
	return s.workspaceID, s.err
}

var testAllowedOrigins = []string{"http://localhost:3000", "https://brokerly.app"}

func TestWebSocketHandler_HandleWS_MissingToken(t *testing.T) {
	e := echo.New()
	h := NewWebSocketHandler(websocket.NewHub(), &stubSubscribers{workspaceID: 1}, testAllowedOrigins)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.HandleWS(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing token", decodeProblem(t, rec).Detail)
}

func TestWebSocketHandler_HandleWS_InvalidToken(t *testing.T) {
	e := echo.New()
	h := NewWebSocketHandler(websocket.NewHub(), &stubSubscribers{err: errors.New("expired")}, testAllowedOrigins)

	req := httptest.NewRequest(http.MethodGet, "/ws?token=invalid-jwt", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.HandleWS(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebSocketHandler_HandleWS_NoMembership(t *testing.T) {
	e := echo.New()
	h := NewWebSocketHandler(websocket.NewHub(), &stubSubscribers{err: websocket.ErrNoMembership}, testAllowedOrigins)

	req := httptest.NewRequest(http.MethodGet, "/ws?token=orphan-jwt", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.HandleWS(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebSocketHandler_HandleWS_ValidToken_NoUpgrade(t *testing.T) {
	e := echo.New()
	hub := websocket.NewHub()
	h := NewWebSocketHandler(hub, &stubSubscribers{workspaceID: 42}, testAllowedOrigins)

	// A plain GET passes auth but cannot be upgraded
	req := httptest.NewRequest(http.MethodGet, "/ws?token=valid-jwt", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.HandleWS(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, hub.ClientCount(42))
}

func TestWebSocketHandler_StreamsWorkspaceEvents(t *testing.T) {
	e := echo.New()
	hub := websocket.NewHub()
	defer hub.Shutdown()
	h := NewWebSocketHandler(hub, &stubSubscribers{workspaceID: 7}, testAllowedOrigins)
	e.GET("/ws", h.HandleWS)

	server := httptest.NewServer(e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=valid-jwt"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var ready websocket.Event
	require.NoError(t, conn.ReadJSON(&ready))
	assert.Equal(t, "connection.ready", ready.Type)
	assert.Equal(t, 1, hub.ClientCount(7))

	hub.Publish(8, websocket.AgentDeleted(1))
	hub.Publish(7, websocket.PolicyDeleted(99))

	var event websocket.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "policy.deleted", event.Type, "events of other workspaces are not delivered")
	assert.Equal(t, websocket.EntityTypePolicy, event.Entity)
}

func TestWebSocketHandler_OriginAllowlist(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), &stubSubscribers{workspaceID: 1}, testAllowedOrigins)

	tests := []struct {
		name     string
		origin   string
		expected bool
	}{
		{"allowed origin", "http://localhost:3000", true},
		{"allowed origin https", "https://brokerly.app", true},
		{"disallowed origin", "https://evil.com", false},
		{"empty origin (same-origin)", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.expected, h.origins.permits(req))
		})
	}
}

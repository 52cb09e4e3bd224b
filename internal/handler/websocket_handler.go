package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SubscriberAuthorizer resolves a session token to the workspace stream it may join
type SubscriberAuthorizer interface {
	Authorize(ctx context.Context, token string) (workspaceID int32, err error)
}

// originAllowlist holds the browser origins allowed to open the event stream.
// Requests without an Origin header come from non-browser clients and pass.
type originAllowlist map[string]struct{}

func newOriginAllowlist(origins []string) originAllowlist {
	list := make(originAllowlist, len(origins))
	for _, o := range origins {
		list[o] = struct{}{}
	}
	return list
}

func (l originAllowlist) permits(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if _, ok := l[origin]; ok {
		return true
	}
	log.Warn().Str("origin", origin).Msg("WebSocket origin refused")
	return false
}

// WebSocketHandler upgrades authenticated browsers to the workspace event stream
type WebSocketHandler struct {
	hub         *websocket.Hub
	subscribers SubscriberAuthorizer
	origins     originAllowlist
	upgrader    ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, subscribers SubscriberAuthorizer, allowedOrigins []string) *WebSocketHandler {
	origins := newOriginAllowlist(allowedOrigins)
	return &WebSocketHandler{
		hub:         hub,
		subscribers: subscribers,
		origins:     origins,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.permits,
		},
	}
}

// admit checks the handshake token. On refusal the problem response has
// already been written and ok is false.
func (h *WebSocketHandler) admit(c echo.Context) (workspaceID int32, ok bool, err error) {
	token := c.QueryParam("token")
	if token == "" {
		return 0, false, NewUnauthorizedError(c, "Missing token")
	}

	workspaceID, authErr := h.subscribers.Authorize(c.Request().Context(), token)
	if errors.Is(authErr, websocket.ErrNoMembership) {
		log.Debug().Msg("WebSocket refused: caller has no brokerage")
		return 0, false, NewForbiddenError(c, "No active brokerage membership")
	}
	if authErr != nil {
		log.Debug().Err(authErr).Msg("WebSocket refused: token rejected")
		return 0, false, NewUnauthorizedError(c, "Invalid token")
	}
	return workspaceID, true, nil
}

// HandleWS handles GET /ws?token=<jwt>. Browsers cannot set headers on a
// websocket handshake, so the token travels in the query string.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	workspaceID, ok, err := h.admit(c)
	if !ok {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written an error response
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("WebSocket upgrade failed")
		return nil
	}

	client := websocket.NewClient(conn, workspaceID, h.hub)
	log.Info().
		Int32("workspace_id", workspaceID).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	go client.Serve()
	return nil
}

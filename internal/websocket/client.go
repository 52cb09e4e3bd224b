package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Browsers only answer pings; anything larger is a misbehaving peer
	maxInboundBytes = 512
	// queueDepth is how many events a client may fall behind before eviction
	queueDepth = 64
)

// Client is one browser tab following its brokerage's changes
type Client struct {
	id          string
	workspaceID int32
	conn        *websocket.Conn
	hub         *Hub

	queue    chan []byte
	done     chan struct{}
	stopOnce sync.Once
}

// NewClient wraps an upgraded connection
func NewClient(conn *websocket.Conn, workspaceID int32, hub *Hub) *Client {
	return &Client{
		id:          uuid.NewString(),
		workspaceID: workspaceID,
		conn:        conn,
		hub:         hub,
		queue:       make(chan []byte, queueDepth),
		done:        make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

func (c *Client) WorkspaceID() int32 { return c.workspaceID }

// Send queues an encoded event without blocking
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.queue <- data:
		return nil
	default:
		return ErrClientTooSlow
	}
}

// Close asks the write loop to send a close frame and drop the connection.
// Safe to call more than once.
func (c *Client) Close() error {
	c.stopOnce.Do(func() { close(c.done) })
	return nil
}

// Serve registers the client and runs until the connection ends. Blocks.
func (c *Client) Serve() {
	go c.writeLoop()
	c.hub.Register(c)
	c.readLoop()
}

// readLoop only watches for pongs and disconnects; inbound data frames are dropped
func (c *Client) readLoop() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxInboundBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err == nil {
			continue
		}
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
			c.logger().Warn().Err(err).Msg("WebSocket closed unexpectedly")
		}
		return
	}
}

// writeLoop owns the connection: it is the only writer and the one that closes it
func (c *Client) writeLoop() {
	keepalive := time.NewTicker(pingPeriod)
	defer func() {
		keepalive.Stop()
		_ = c.conn.Close()
	}()

	for {
		var (
			kind    = websocket.TextMessage
			payload []byte
		)
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"),
				time.Now().Add(writeWait))
			return
		case payload = <-c.queue:
		case <-keepalive.C:
			kind = websocket.PingMessage
		}

		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(kind, payload); err != nil {
			c.logger().Debug().Err(err).Msg("WebSocket write failed")
			_ = c.Close()
			return
		}
	}
}

func (c *Client) logger() *zerolog.Logger {
	l := log.With().Str("client_id", c.id).Int32("workspace_id", c.workspaceID).Logger()
	return &l
}

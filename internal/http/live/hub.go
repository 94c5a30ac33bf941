// Package live pushes the board to WebSocket clients whenever a snapshot is accepted.
package live

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"

	appboard "github.com/housefest/board-service/internal/app/board"
	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/logging"
	"github.com/housefest/board-service/internal/metrics"
)

const (
	// MessageTypeBoard tags a full board message.
	MessageTypeBoard = "board"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
	broadcastQueue = 8
)

// ErrBacklog is returned by Notify when the hub cannot keep up with broadcasts.
var ErrBacklog = crerr.New("live: broadcast backlog full")

// ErrClosed is returned once the hub has stopped.
var ErrClosed = crerr.New("live: hub closed")

// BoardSource renders the current board.
type BoardSource interface {
	Board() appboard.BoardView
}

// Message is the envelope sent to clients.
type Message struct {
	Type string             `json:"type"`
	Data appboard.BoardView `json:"data"`
}

// Hub fans board updates out to connected clients. Run owns the client set.
type Hub struct {
	source   BoardSource
	logger   *slog.Logger
	metrics  *metrics.Recorder
	upgrader websocket.Upgrader

	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once

	countMu sync.RWMutex
	count   int
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub constructs a Hub. Call Run before serving connections.
func NewHub(source BoardSource, logger *slog.Logger, recorder *metrics.Recorder) *Hub {
	return &Hub{
		source:  source,
		logger:  logger,
		metrics: recorder,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastQueue),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx ends or Close is called.
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[*client]struct{})
	defer func() {
		for c := range clients {
			h.drop(clients, c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.Close()
			return
		case <-h.done:
			return
		case c := <-h.register:
			clients[c] = struct{}{}
			h.metrics.RecordWebsocketClients(1)
			h.setCount(len(clients))
		case c := <-h.unregister:
			if _, ok := clients[c]; ok {
				h.drop(clients, c)
			}
		case msg := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- msg:
				default:
					logging.Warn(h.logger, "dropping slow websocket client")
					h.drop(clients, c)
				}
			}
		}
	}
}

func (h *Hub) drop(clients map[*client]struct{}, c *client) {
	delete(clients, c)
	close(c.send)
	h.metrics.RecordWebsocketClients(-1)
	h.setCount(len(clients))
}

// Close stops the hub. Connected clients receive a close frame.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount reports the number of registered clients.
func (h *Hub) ClientCount() int {
	h.countMu.RLock()
	defer h.countMu.RUnlock()
	return h.count
}

func (h *Hub) setCount(n int) {
	h.countMu.Lock()
	h.count = n
	h.countMu.Unlock()
}

// Notify queues the current board for every client. It never blocks.
func (h *Hub) Notify(_ context.Context, _ board.Snapshot, _ string) error {
	select {
	case <-h.done:
		return ErrClosed
	default:
	}
	msg, err := h.boardMessage()
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- msg:
		return nil
	default:
		return ErrBacklog
	}
}

func (h *Hub) boardMessage() ([]byte, error) {
	var view appboard.BoardView
	if h.source != nil {
		view = h.source.Board()
	}
	payload, err := sonic.Marshal(Message{Type: MessageTypeBoard, Data: view})
	if err != nil {
		return nil, crerr.Wrap(err, "encode board message")
	}
	return payload, nil
}

// ServeWS upgrades the request and sends the current board before any update.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logger, "websocket upgrade failed", "error", err)
		return
	}

	initial, err := h.boardMessage()
	if err != nil {
		logging.Error(logger, "websocket initial board failed", err)
		_ = conn.Close()
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	c.send <- initial

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump discards client input and detects disconnects.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug(c.hub.logger, "websocket read failed", "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

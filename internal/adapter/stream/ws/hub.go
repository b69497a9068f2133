// Package ws streams finished tick reports to websocket watchers. Clients
// subscribe with a plain GET and optionally filter to one simulation; each
// completed tick arrives as one JSON text message.
package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
	"mindverse/internal/logging"
)

const (
	sendQueueSize = 16
	writeTimeout  = 5 * time.Second
)

// Hub fans reports out to connected clients. Broadcast never blocks: a
// client whose queue is full is dropped, because the tick path must not wait
// on anyone's network.
type Hub struct {
	log      logging.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

var _ ports.ReportBroadcaster = (*Hub)(nil)

type client struct {
	simulationID string
	conn         *websocket.Conn
	send         chan []byte
}

func NewHub(log logging.Logger) *Hub {
	return &Hub{
		log: logging.OrNoOp(log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 32 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: map[*client]struct{}{},
	}
}

// Handler upgrades a subscription request. The simulation_id query filters
// the stream; empty subscribes to every simulation.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		simID := strings.TrimSpace(r.URL.Query().Get("simulation_id"))

		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}

		c := &client{
			simulationID: simID,
			conn:         conn,
			send:         make(chan []byte, sendQueueSize),
		}
		h.mu.Lock()
		h.clients[c] = struct{}{}
		h.mu.Unlock()
		h.log.Debug("stream client joined", "simulation_id", simID)

		go c.writeLoop(h)
		c.readLoop(h)
	}
}

// Broadcast queues the report for every matching client. Full queues drop
// the client on the spot.
func (h *Hub) Broadcast(report mind.TickReport) {
	payload, err := json.Marshal(report)
	if err != nil {
		h.log.Error("encode report for stream", "simulation_id", report.SimulationID, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.simulationID != "" && c.simulationID != report.SimulationID {
			continue
		}
		select {
		case c.send <- payload:
		default:
			delete(h.clients, c)
			close(c.send)
			h.log.Warn("dropping slow stream client", "simulation_id", c.simulationID)
		}
	}
}

// Close disconnects every client. Used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// ClientCount reports the live subscriber count.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// drop removes a client exactly once; the hub is the only closer of send, so
// writers see a clean channel close no matter who noticed the failure first.
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (c *client) writeLoop(h *Hub) {
	defer c.conn.Close()
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.drop(c)
			return
		}
	}
	// Channel closed by the hub: say goodbye properly.
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(time.Second))
}

// readLoop discards inbound frames; its job is noticing the peer went away.
func (c *client) readLoop(h *Hub) {
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(c)
}

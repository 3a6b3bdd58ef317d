package ws

import (
	"net/http"
	"sync"

	"log/slog"

	"github.com/google/uuid"

	"github.com/S-Dhruv/codingAssistant/pkg/metrics"
)

// Hub is the gateway: it accepts websocket connections, assigns each a
// connection id, and runs a relay session for the connection's lifetime.
// It also owns the room broadcast groups used for fan-out.
type Hub struct {
	log      *slog.Logger
	presence *Presence
	registry *Registry

	mu     sync.RWMutex
	conns  map[string]*Conn  // live connections by id
	groups map[string]*group // room code -> broadcast group
}

// group is a room's transport-level broadcast set. Its lock is held
// across the whole fan-out so every member observes room events in the
// same order.
type group struct {
	mu      sync.Mutex
	members map[string]*Conn
}

// NewHub sets up the hub with fresh presence/registry state
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		log:      logger,
		presence: NewPresence(),
		registry: NewRegistry(),
		conns:    map[string]*Conn{},
		groups:   map[string]*group{},
	}
}

// ServeWS handles a new /ws connection
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sock, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	c := newConn(uuid.NewString(), sock)
	h.mu.Lock()
	h.conns[c.ID()] = c
	h.mu.Unlock()
	metrics.WSConnections.Inc()
	h.log.Info("ws.connect", "conn", c.ID())

	s := newSession(h, c)

	// Outbound writer
	go c.WriteLoop(ctx)

	// Inbound reader: one event at a time, in arrival order
	for {
		payload, ok := c.Read(ctx)
		if !ok {
			break
		}
		s.dispatch(payload)
	}

	s.disconnect()
	metrics.WSConnections.Dec()
	_ = c.Close()
}

// subscribe adds c to the room's broadcast group, creating it if needed
func (h *Hub) subscribe(room string, c *Conn) {
	h.mu.Lock()
	g := h.groups[room]
	if g == nil {
		g = &group{members: map[string]*Conn{}}
		h.groups[room] = g
	}
	h.mu.Unlock()

	g.mu.Lock()
	g.members[c.ID()] = c
	g.mu.Unlock()
}

// unsubscribe removes c from the room's broadcast group
func (h *Hub) unsubscribe(room string, c *Conn) {
	h.mu.RLock()
	g := h.groups[room]
	h.mu.RUnlock()
	if g == nil {
		return
	}
	g.mu.Lock()
	delete(g.members, c.ID())
	g.mu.Unlock()
}

// dropConn removes c from the connection table and every broadcast
// group. Called once, from the disconnect path.
func (h *Hub) dropConn(c *Conn) {
	h.mu.Lock()
	delete(h.conns, c.ID())
	groups := make([]*group, 0, len(h.groups))
	for _, g := range h.groups {
		groups = append(groups, g)
	}
	h.mu.Unlock()

	for _, g := range groups {
		g.mu.Lock()
		delete(g.members, c.ID())
		g.mu.Unlock()
	}
}

// emitToRoom delivers b to every member of the room's broadcast group.
func (h *Hub) emitToRoom(room string, b []byte) {
	h.emit(room, "", b)
}

// emitToRoomExcept delivers b to every member except exceptID.
func (h *Hub) emitToRoomExcept(room, exceptID string, b []byte) {
	h.emit(room, exceptID, b)
}

func (h *Hub) emit(room, exceptID string, b []byte) {
	h.mu.RLock()
	g := h.groups[room]
	h.mu.RUnlock()
	if g == nil {
		return
	}

	// Full lock, not a snapshot: enqueueing under the group lock keeps
	// per-room notification order identical for every member.
	g.mu.Lock()
	for id, c := range g.members {
		if id == exceptID {
			continue
		}
		c.send(b)
	}
	g.mu.Unlock()
}

// emitTo delivers b to a single connection by id, if still live.
func (h *Hub) emitTo(connID string, b []byte) {
	h.mu.RLock()
	c := h.conns[connID]
	h.mu.RUnlock()
	if c != nil {
		c.send(b)
	}
}

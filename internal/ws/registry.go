package ws

import "sync"

// Registry tracks which transport connections sit in each room,
// decoupled from user identity. Disconnect fan-out is driven from here.
type Registry struct {
	mu    sync.RWMutex
	conns map[string][]string // room code -> connection ids, attach order
}

func NewRegistry() *Registry {
	return &Registry{conns: map[string][]string{}}
}

// Attach adds connID to the room's connection set. Repeat attaches are
// no-ops.
func (g *Registry) Attach(room, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !containsID(g.conns[room], connID) {
		g.conns[room] = append(g.conns[room], connID)
	}
}

// Members returns a snapshot of the room's connection ids in attach order.
func (g *Registry) Members(room string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.conns[room]...)
}

// Detachment records one room a connection was removed from and the
// connections still attached afterwards.
type Detachment struct {
	Room      string
	Remaining []string
}

// DetachAll removes connID from every room it appears in. A connection
// normally sits in a single room, but re-join races can leave it in
// several, so the whole map is swept.
func (g *Registry) DetachAll(connID string) []Detachment {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []Detachment
	for room, ids := range g.conns {
		if !containsID(ids, connID) {
			continue
		}
		ids = removeID(ids, connID)
		g.conns[room] = ids
		out = append(out, Detachment{
			Room:      room,
			Remaining: append([]string(nil), ids...),
		})
	}
	return out
}

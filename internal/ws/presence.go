package ws

import "sync"

// Presence tracks the logical user membership of each room, independent
// of transport connections. It is the source of truth for who is where.
type Presence struct {
	mu    sync.RWMutex
	rooms map[string][]string // room code -> user ids, join order
	users map[string]string   // user id -> current room code
}

func NewPresence() *Presence {
	return &Presence{
		rooms: map[string][]string{},
		users: map[string]string{},
	}
}

// Join adds user to room and records it as the user's current room.
// Repeat joins are no-ops.
func (p *Presence) Join(room, user string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !containsID(p.rooms[room], user) {
		p.rooms[room] = append(p.rooms[room], user)
	}
	p.users[user] = room
}

// Leave removes user from the room's member list and clears the user's
// room mapping when it still points at room. Unknown rooms and users
// are no-ops.
func (p *Presence) Leave(room, user string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cur, ok := p.rooms[room]; ok {
		p.rooms[room] = removeID(cur, user)
	}
	if p.users[user] == room {
		delete(p.users, user)
	}
}

// Members returns a snapshot of the room's user ids in join order.
func (p *Presence) Members(room string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.rooms[room]...)
}

// RoomOf reports the room the user currently belongs to.
func (p *Presence) RoomOf(user string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	room, ok := p.users[user]
	return room, ok
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

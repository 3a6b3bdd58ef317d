package ws

import (
	"encoding/json"
	"time"

	"log/slog"

	"github.com/S-Dhruv/codingAssistant/pkg/metrics"
)

// session owns one connection's room membership and relays its events.
// All fields are touched only from the connection's read loop, so event
// handling is naturally serialized per connection.
type session struct {
	hub      *Hub
	conn     *Conn
	log      *slog.Logger
	joinedAt time.Time // first-seen time, logged as online duration
	room     string    // current room, set by join-room
}

func newSession(h *Hub, c *Conn) *session {
	return &session{hub: h, conn: c, log: h.log, joinedAt: time.Now()}
}

// dispatch routes one inbound frame to its handler. Faults stay local:
// a malformed or panicking event is logged and the session carries on.
func (s *session) dispatch(raw []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("ws.handler.panic", "conn", s.conn.ID(), "panic", rec)
		}
	}()

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.log.Debug("ws.frame.bad", "conn", s.conn.ID(), "err", err)
		return
	}
	// Client-supplied names are folded into one label value to keep
	// metric cardinality bounded.
	switch env.Event {
	case EvJoinRoom, EvSignal, EvCursor, EvEditor, EvTextMessage, EvLeaveRoom:
		metrics.WSEvents.WithLabelValues(env.Event).Inc()
	default:
		metrics.WSEvents.WithLabelValues("unknown").Inc()
	}

	switch env.Event {
	case EvJoinRoom:
		s.joinRoom(env.Data)
	case EvSignal:
		s.signal(env.Data)
	case EvCursor:
		s.cursorPosition(env.Data)
	case EvEditor:
		s.editor(env.Data)
	case EvTextMessage:
		s.textMessage(env.Data)
	case EvLeaveRoom:
		s.leaveRoom(env.Data)
	default:
		s.log.Debug("ws.event.unknown", "conn", s.conn.ID(), "event", env.Event)
	}
}

// joinRoom subscribes the connection to the room, records membership in
// both stores, and announces the join to the whole room (sender included).
func (s *session) joinRoom(data json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomCode == "" || p.UserID == "" {
		return
	}

	s.hub.subscribe(p.RoomCode, s.conn)
	s.room = p.RoomCode

	s.hub.presence.Join(p.RoomCode, p.UserID)
	s.hub.registry.Attach(p.RoomCode, s.conn.ID())

	b, err := marshalEvent(EvUserJoined, userJoinedPayload{
		ConnectionID: s.conn.ID(),
		Connections:  s.hub.registry.Members(p.RoomCode),
	})
	if err != nil {
		return
	}
	s.hub.emitToRoom(p.RoomCode, b)
	s.log.Info("ws.join", "conn", s.conn.ID(), "user", p.UserID, "room", p.RoomCode)
}

// signal relays an opaque signaling blob either to one connection
// (toId set) or to every other member of the room.
func (s *session) signal(data json.RawMessage) {
	var p signalPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}

	b, err := marshalEvent(EvSignal, signalOutPayload{FromID: s.conn.ID(), Message: p.Message})
	if err != nil {
		return
	}
	if p.ToID != "" {
		s.hub.emitTo(p.ToID, b)
		return
	}
	s.hub.emitToRoomExcept(p.RoomCode, s.conn.ID(), b)
}

// cursorPosition relays a cursor update to everyone else in the
// session's current room. Dropped when the session has not joined yet.
func (s *session) cursorPosition(data json.RawMessage) {
	var p cursorPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	if s.room == "" || p.UserID == "" || len(p.Position) == 0 {
		return
	}

	b, err := marshalEvent(EvCursor, cursorPayload{UserID: p.UserID, Position: p.Position})
	if err != nil {
		return
	}
	s.hub.emitToRoomExcept(s.room, s.conn.ID(), b)
}

// editor relays an editor change to the whole room, sender included.
func (s *session) editor(data json.RawMessage) {
	var p editorPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}

	b, err := marshalEvent(EvEditor, p.Change)
	if err != nil {
		return
	}
	s.hub.emitToRoom(p.Code, b)
}

// textMessage relays a chat line to the whole room, sender included.
func (s *session) textMessage(data json.RawMessage) {
	var p textMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}

	b, err := marshalEvent(EvTextMessage, textMessageOutPayload{Message: p.Message, Client: p.Client})
	if err != nil {
		return
	}
	s.hub.emitToRoom(p.Code, b)
}

// leaveRoom prunes the user from presence and drops the transport
// subscription. Deliberately silent: no notification goes out, unlike
// the disconnect path.
func (s *session) leaveRoom(data json.RawMessage) {
	var p leaveRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}

	s.hub.presence.Leave(p.Code, p.Client)
	s.hub.unsubscribe(p.Code, s.conn)
	s.log.Info("ws.leave", "conn", s.conn.ID(), "user", p.Client, "room", p.Code)
}

// disconnect runs once when the transport closes. The connection is
// detached from every room it was in and each of those rooms is told
// user-left. Presence is left alone here: only connection identity is
// known at this point, user membership is pruned by explicit leave-room.
func (s *session) disconnect() {
	s.hub.dropConn(s.conn)

	for _, d := range s.hub.registry.DetachAll(s.conn.ID()) {
		b, err := marshalEvent(EvUserLeft, userLeftPayload{ConnectionID: s.conn.ID()})
		if err != nil {
			continue
		}
		s.hub.emitToRoom(d.Room, b)
		s.log.Debug("ws.detach", "conn", s.conn.ID(), "room", d.Room, "remaining", len(d.Remaining))
	}
	s.log.Info("ws.disconnect", "conn", s.conn.ID(), "online", time.Since(s.joinedAt))
}

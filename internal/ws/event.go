package ws

import "encoding/json"

// Envelope frames every message on the socket, both directions.
// Signaling bodies stay json.RawMessage end to end; the relay never
// looks inside an offer, answer or ICE candidate.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound event names.
const (
	EvJoinRoom    = "join-room"
	EvSignal      = "signal"
	EvCursor      = "cursor-position"
	EvEditor      = "editor"
	EvTextMessage = "text-message"
	EvLeaveRoom   = "leave-room"
)

// Outbound-only event names.
const (
	EvUserJoined = "user-joined"
	EvUserLeft   = "user-left"
)

type joinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	UserID   string `json:"userId"`
}

type signalPayload struct {
	RoomCode string          `json:"roomCode"`
	Message  json.RawMessage `json:"message"`
	ToID     string          `json:"toId,omitempty"`
}

type cursorPayload struct {
	UserID   string          `json:"userId"`
	Position json.RawMessage `json:"position"`
}

type editorPayload struct {
	Change json.RawMessage `json:"change"`
	Code   string          `json:"code"`
}

type textMessagePayload struct {
	Message string `json:"message"`
	Client  string `json:"client"`
	Code    string `json:"code"`
}

type leaveRoomPayload struct {
	Code   string `json:"code"`
	Client string `json:"client"`
}

type userJoinedPayload struct {
	ConnectionID string   `json:"connectionId"`
	Connections  []string `json:"connections"`
}

type signalOutPayload struct {
	FromID  string          `json:"fromId"`
	Message json.RawMessage `json:"message"`
}

type textMessageOutPayload struct {
	Message string `json:"message"`
	Client  string `json:"client"`
}

type userLeftPayload struct {
	ConnectionID string `json:"connectionId"`
}

// marshalEvent builds the wire bytes for an outbound event.
func marshalEvent(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

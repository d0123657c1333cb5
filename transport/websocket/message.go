package websocket

import (
	"encoding/json"
	"strconv"
)

// Client → server action names. These are the wire contract and must not change.
const (
	ActionCreateRoom   = "create_room"
	ActionJoinRoom     = "join_room"
	ActionMakeMove     = "make_move"
	ActionRequestRooms = "request_rooms"
)

// Message is the wire envelope. Requests that want an acknowledgment carry an
// id; the reply echoes the action and the id.
type Message struct {
	Action  string          `json:"action"`
	ID      *int64          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CreateRoomPayload struct {
	Name string `json:"name"`
}

type JoinRoomPayload struct {
	Name string `json:"name"`
}

// MakeMovePayload - the cell index arrives as a number or a numeric string,
// depending on the client.
type MakeMovePayload struct {
	RoomName string          `json:"roomName"`
	Index    json.RawMessage `json:"index"`
}

// Cell - parses the index; reports false for anything that is not an integer.
func (that *MakeMovePayload) Cell() (int, bool) {
	var raw any
	if err := json.Unmarshal(that.Index, &raw); err != nil {
		return 0, false
	}

	switch value := raw.(type) {
	case float64:
		cell := int(value)
		if float64(cell) != value {
			return 0, false
		}
		return cell, true
	case string:
		cell, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return cell, true
	default:
		return 0, false
	}
}

// AckPayload - the tagged success/failure reply for acknowledged requests.
type AckPayload struct {
	Success      bool   `json:"success"`
	PlayerSymbol string `json:"playerSymbol,omitempty"`
	Message      string `json:"message,omitempty"`
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

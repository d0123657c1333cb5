package entity

// Player - a seated participant of a room. Owned by exactly one Room;
// removed when the room is deleted or the connection drops.
type Player struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol,omitempty"`
}

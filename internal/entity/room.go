package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	WinnerDraw = "Draw"

	StatusAvailable = "Available"
	StatusFull      = "Full"

	EmptyCell = ""

	MaxPlayers = 2
)

// Board - the 9-cell grid. Empty cells are serialized as null so the wire
// format stays null|"X"|"O" per cell.
type Board [9]string

func (that Board) MarshalJSON() ([]byte, error) {
	cells := make([]*string, len(that))
	for i := range that {
		if that[i] != EmptyCell {
			cell := that[i]
			cells[i] = &cell
		}
	}

	data, err := json.Marshal(cells)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}

	return data, nil
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells [9]*string
	if err := json.Unmarshal(bytes.TrimSpace(data), &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	for i := range cells {
		if cells[i] != nil {
			that[i] = *cells[i]
		} else {
			that[i] = EmptyCell
		}
	}

	return nil
}

// Summary - the derived discovery view of a room. Recomputed on demand,
// never stored.
type Summary struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Room - a named two-seat match context. Seat order determines symbols:
// the first joiner is always X, the second O.
type Room struct {
	Name    string    `json:"name"`
	Players []*Player `json:"players"`
	Board   Board     `json:"board"`
	Turn    string    `json:"turn"`
}

func NewRoom(name string) *Room {
	return &Room{
		Name:    name,
		Players: []*Player{},
		Board:   Board{},
		Turn:    PlayerX,
	}
}

func (that *Room) IsFull() bool {
	return len(that.Players) == MaxPlayers
}

// AddPlayer - seats a client and assigns its symbol by join order.
func (that *Room) AddPlayer(clientID string) (string, error) {
	if that.IsFull() {
		return "", apperror.ErrRoomFull
	}

	symbol := PlayerX
	if len(that.Players) == 1 {
		symbol = PlayerO
	}

	that.Players = append(that.Players, &Player{ID: clientID, Symbol: symbol})

	return symbol, nil
}

// RemovePlayer - unseats a client; a no-op for unknown IDs.
func (that *Room) RemovePlayer(clientID string) {
	for i, player := range that.Players {
		if player.ID == clientID {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return
		}
	}
}

func (that *Room) PlayerByID(clientID string) *Player {
	for _, player := range that.Players {
		if player.ID == clientID {
			return player
		}
	}

	return nil
}

// PlayerIDs - seat order view of the connected client IDs.
func (that *Room) PlayerIDs() []string {
	ids := make([]string, 0, len(that.Players))
	for _, player := range that.Players {
		ids = append(ids, player.ID)
	}

	return ids
}

func (that *Room) ToggleTurn() {
	if that.Turn == PlayerX {
		that.Turn = PlayerO
	} else {
		that.Turn = PlayerX
	}
}

func (that *Room) Summary() Summary {
	status := StatusAvailable
	if that.IsFull() {
		status = StatusFull
	}

	return Summary{Name: that.Name, Status: status}
}

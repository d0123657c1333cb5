package usecase

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/internal/tictactoe"
)

// Server → client event names. These are the wire contract and must not change.
const (
	EventRoomsList    = "rooms_list"
	EventBoardUpdate  = "board_update"
	EventTurnChange   = "turn_change"
	EventStartGame    = "start_game"
	EventRoomUpdate   = "room_update"
	EventGameOver     = "game_over"
	EventOpponentLeft = "opponent_left"
	EventErrorMessage = "error_message"
)

const opponentLeftMessage = "Your opponent left the game."

type roomRepo interface {
	Create(name string) (*entity.Room, error)
	GetByName(name string) (*entity.Room, error)
	DeleteByName(name string)
	Summaries() []entity.Summary
}

// broadcaster - the only surface the room logic touches on the transport.
// Emissions are fire-and-forget and must not block the caller.
type broadcaster interface {
	ToClient(clientID, event string, payload any)
	ToClients(clientIDs []string, event string, payload any)
	ToAll(event string, payload any)
}

type StartGamePayload struct {
	Turn string `json:"turn"`
}

type RoomUpdatePayload struct {
	Players []string `json:"players"`
	Turn    string   `json:"turn"`
}

type GameOverPayload struct {
	Winner string `json:"winner"`
}

type OpponentLeftPayload struct {
	Message string `json:"message"`
}

// session - per-connection binding to at most one room and symbol.
type session struct {
	roomName string
	symbol   string
}

// RoomManager - owns the room lifecycle: seating, turn enforcement, move
// validation, terminal detection and disconnect cleanup. One mutex serializes
// every operation, so each handler runs as an atomic
// read-check-mutate-broadcast unit.
type RoomManager struct {
	logger  *slog.Logger
	rooms   roomRepo
	gateway broadcaster

	mu       sync.Mutex
	sessions map[string]*session
}

func NewRoomManager(logger *slog.Logger, rooms roomRepo, gateway broadcaster) *RoomManager {
	return &RoomManager{
		logger:   logger,
		rooms:    rooms,
		gateway:  gateway,
		sessions: make(map[string]*session),
	}
}

// Connect - registers an empty session binding and pushes the current room
// list to the new client.
func (that *RoomManager) Connect(clientID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[clientID] = &session{}
	that.gateway.ToClient(clientID, EventRoomsList, that.rooms.Summaries())

	that.logger.Info("client connected", "clientID", clientID)
}

// CreateRoom - inserts a fresh room and republishes the room list.
// Returns apperror.ErrInvalidName or apperror.ErrAlreadyExists on refusal.
func (that *RoomManager) CreateRoom(name string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := that.rooms.Create(name); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	that.publishSummaries()

	that.logger.Info("room created", "room", name)

	return nil
}

// JoinRoom - seats the client and binds its session. The joiner receives the
// current board and turn; everyone in the room receives the membership view;
// the second join starts the game.
func (that *RoomManager) JoinRoom(name, clientID string) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.rooms.GetByName(name)
	if err != nil {
		return "", fmt.Errorf("failed to get room: %w", err)
	}

	symbol, err := room.AddPlayer(clientID)
	if err != nil {
		return "", fmt.Errorf("failed to join room: %w", err)
	}

	that.sessions[clientID] = &session{roomName: room.Name, symbol: symbol}

	that.gateway.ToClient(clientID, EventBoardUpdate, room.Board)
	that.gateway.ToClient(clientID, EventTurnChange, room.Turn)

	that.gateway.ToClients(room.PlayerIDs(), EventRoomUpdate, RoomUpdatePayload{
		Players: room.PlayerIDs(),
		Turn:    room.Turn,
	})

	if room.IsFull() {
		that.gateway.ToClients(room.PlayerIDs(), EventStartGame, StartGamePayload{Turn: room.Turn})
	}

	that.publishSummaries()

	that.logger.Info("player joined room", "room", room.Name, "clientID", clientID, "symbol", symbol)

	return symbol, nil
}

// MakeMove - applies a move if it is legal. Every illegal input (unknown room,
// bad cell, unseated client, out-of-turn, occupied cell) is dropped without
// any emission: racing clients are expected and simply ignored.
func (that *RoomManager) MakeMove(roomName, clientID string, cell int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeMove", "room", roomName, "clientID", clientID)

	room, err := that.rooms.GetByName(roomName)
	if err != nil {
		log.Debug("move for unknown room dropped")
		return
	}

	if cell < 0 || cell >= len(room.Board) {
		log.Debug("move with invalid cell dropped", "cell", cell)
		return
	}

	player := room.PlayerByID(clientID)
	if player == nil {
		log.Debug("move from unseated client dropped")
		return
	}

	if player.Symbol != room.Turn {
		log.Debug("out-of-turn move dropped", "symbol", player.Symbol, "turn", room.Turn)
		return
	}

	if room.Board[cell] != entity.EmptyCell {
		log.Debug("move on occupied cell dropped", "cell", cell)
		return
	}

	room.Board[cell] = player.Symbol
	that.gateway.ToClients(room.PlayerIDs(), EventBoardUpdate, room.Board)

	switch {
	case tictactoe.Winner(room.Board) != entity.EmptyCell:
		that.finishRoom(room, player.Symbol)
	case tictactoe.IsFull(room.Board):
		that.finishRoom(room, entity.WinnerDraw)
	default:
		room.ToggleTurn()
		that.gateway.ToClients(room.PlayerIDs(), EventTurnChange, room.Turn)
		that.publishSummaries()
	}
}

// Disconnect - tears down the client's room per the leave policy and clears
// its session binding. Safe to call more than once per client.
func (that *RoomManager) Disconnect(clientID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Disconnect", "clientID", clientID)

	sess, ok := that.sessions[clientID]
	if !ok {
		return
	}
	delete(that.sessions, clientID)

	if sess.roomName == "" {
		log.Info("client disconnected")
		return
	}

	room, err := that.rooms.GetByName(sess.roomName)
	if err != nil {
		// the room was already torn down, e.g. on game over
		log.Info("client disconnected", "room", sess.roomName)
		return
	}

	room.RemovePlayer(clientID)

	switch len(room.Players) {
	case 0:
		that.deleteRoom(room)
	case 1:
		remaining := room.Players[0]
		that.gateway.ToClient(remaining.ID, EventOpponentLeft, OpponentLeftPayload{Message: opponentLeftMessage})
		that.deleteRoom(room)
	default:
		log.Warn("room holds more than one player after removal", "room", room.Name, "players", len(room.Players))
		return
	}

	that.publishSummaries()

	log.Info("client disconnected", "room", sess.roomName)
}

// Rooms - a snapshot of the current room summaries.
func (that *RoomManager) Rooms() []entity.Summary {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rooms.Summaries()
}

// finishRoom - announces the result and removes the room. Once gone, no
// further events for it are possible.
func (that *RoomManager) finishRoom(room *entity.Room, winner string) {
	that.gateway.ToClients(room.PlayerIDs(), EventGameOver, GameOverPayload{Winner: winner})
	that.deleteRoom(room)
	that.publishSummaries()

	that.logger.Info("game over", "room", room.Name, "winner", winner)
}

func (that *RoomManager) deleteRoom(room *entity.Room) {
	for _, player := range room.Players {
		if sess, ok := that.sessions[player.ID]; ok {
			sess.roomName = ""
			sess.symbol = ""
		}
	}

	that.rooms.DeleteByName(room.Name)
}

func (that *RoomManager) publishSummaries() {
	that.gateway.ToAll(EventRoomsList, that.rooms.Summaries())
}

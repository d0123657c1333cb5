package websocket

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/usecase"
)

// dispatch - routes one inbound frame to its action handler. Unknown actions
// and malformed envelopes are dropped; the server never faults a connection
// over a bad frame.
func (that *Server) dispatch(c *client, data []byte) {
	log := that.logger.With("method", "dispatch", "clientID", c.id)

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error("failed to unmarshal message", "error", err)
		return
	}

	handler, ok := that.handlers[msg.Action]
	if !ok {
		log.Warn("unknown action", "action", msg.Action)
		return
	}

	handler(c, &msg)
}

func (that *Server) handleCreateRoom(c *client, msg *Message) {
	log := that.logger.With("method", "handleCreateRoom", "clientID", c.id)

	var payload CreateRoomPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		return
	}

	err := that.manager.CreateRoom(payload.Name)

	if msg.ID != nil {
		that.ack(c, msg, AckPayload{Success: err == nil, Message: reasonFor(err)})
		return
	}

	if err != nil {
		that.hub.ToClient(c.id, usecase.EventErrorMessage, reasonFor(err))
	}
}

func (that *Server) handleJoinRoom(c *client, msg *Message) {
	log := that.logger.With("method", "handleJoinRoom", "clientID", c.id)

	var payload JoinRoomPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		return
	}

	symbol, err := that.manager.JoinRoom(payload.Name, c.id)

	if msg.ID != nil {
		that.ack(c, msg, AckPayload{
			Success:      err == nil,
			PlayerSymbol: symbol,
			Message:      reasonFor(err),
		})
		return
	}

	if err != nil {
		that.hub.ToClient(c.id, usecase.EventErrorMessage, reasonFor(err))
	}
}

// handleMakeMove carries no acknowledgment: anything malformed is dropped in
// silence just like an illegal move.
func (that *Server) handleMakeMove(c *client, msg *Message) {
	var payload MakeMovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return
	}

	cell, ok := payload.Cell()
	if !ok {
		return
	}

	that.manager.MakeMove(payload.RoomName, c.id, cell)
}

func (that *Server) handleRequestRooms(c *client, _ *Message) {
	that.hub.ToClient(c.id, usecase.EventRoomsList, that.manager.Rooms())
}

// ack - replies to the requesting client, echoing action and correlation id.
func (that *Server) ack(c *client, msg *Message, payload AckPayload) {
	data := mustMarshal(Message{
		Action:  msg.Action,
		ID:      msg.ID,
		Payload: json.RawMessage(mustMarshal(payload)),
	})

	select {
	case c.send <- data:
	case <-time.After(writeWait):
		that.logger.Warn("failed to queue ack", "clientID", c.id, "action", msg.Action)
	}
}

// reasonFor - the human-readable text for a refusal; empty for success.
func reasonFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apperror.ErrInvalidName):
		return apperror.ErrInvalidName.Error()
	case errors.Is(err, apperror.ErrAlreadyExists):
		return apperror.ErrAlreadyExists.Error()
	case errors.Is(err, apperror.ErrRoomNotFound):
		return apperror.ErrRoomNotFound.Error()
	case errors.Is(err, apperror.ErrRoomFull):
		return apperror.ErrRoomFull.Error()
	default:
		return "internal error"
	}
}

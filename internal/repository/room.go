package repository

import (
	"sync"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

type RoomRepository interface {
	Create(name string) (*entity.Room, error)
	GetByName(name string) (*entity.Room, error)
	DeleteByName(name string)
	Summaries() []entity.Summary
}

type inMemoryRooms struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
	order []string
}

// NewRoomRepository - an in-memory name-keyed room store. Rooms live and die
// with the process; summaries iterate in insertion order.
func NewRoomRepository() RoomRepository {
	return &inMemoryRooms{
		rooms: make(map[string]*entity.Room),
	}
}

func (that *inMemoryRooms) Create(name string) (*entity.Room, error) {
	if name == "" {
		return nil, apperror.ErrInvalidName
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[name]; ok {
		return nil, apperror.ErrAlreadyExists
	}

	room := entity.NewRoom(name)
	that.rooms[name] = room
	that.order = append(that.order, name)

	return room, nil
}

func (that *inMemoryRooms) GetByName(name string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[name]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

// DeleteByName - idempotent removal; deleting an absent room is a no-op.
func (that *inMemoryRooms) DeleteByName(name string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[name]; !ok {
		return
	}

	delete(that.rooms, name)

	for i, existing := range that.order {
		if existing == name {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}
}

func (that *inMemoryRooms) Summaries() []entity.Summary {
	that.mu.RLock()
	defer that.mu.RUnlock()

	summaries := make([]entity.Summary, 0, len(that.order))
	for _, name := range that.order {
		summaries = append(summaries, that.rooms[name].Summary())
	}

	return summaries
}

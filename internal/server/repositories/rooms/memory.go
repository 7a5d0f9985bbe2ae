package rooms

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps rooms in process memory. Names are unique, like
// the rooms_room_name_key constraint.
type MemoryRepository struct {
	mu     sync.RWMutex
	byName map[string]models.Room
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byName: make(map[string]models.Room)}
}

func (r *MemoryRepository) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[room.Name]; ok {
		return nil, common.ErrorAlreadyExists
	}
	room.ID = uuid.NewString()
	r.byName[room.Name] = *room
	return room, nil
}

func (r *MemoryRepository) GetByName(ctx context.Context, name string) (*models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &room, nil
}

package files

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps file rows in process memory, keyed by ID.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]models.File
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.File)}
}

func (r *MemoryRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file.ID = uuid.NewString()
	r.byID[file.ID] = *file
	return file, nil
}

func (r *MemoryRepository) ListByRoom(ctx context.Context, roomName string) ([]*models.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.File, 0)
	for _, f := range r.byID {
		if f.RoomName != roomName {
			continue
		}
		item := f
		result = append(result, &item)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shareit/internal/dbx"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/files"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/rooms"
)

// MemoryRepositoryManager hands out the same process-local repositories for
// every DBTX; the db argument is ignored and may be nil.
type MemoryRepositoryManager struct {
	rooms *rooms.MemoryRepository
	files *files.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		rooms: rooms.NewMemoryRepository(),
		files: files.NewMemoryRepository(),
	}
}

// RunMigrations is a no-op: there is no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Rooms(dbx.DBTX) rooms.Repository { return m.rooms }

func (m *MemoryRepositoryManager) Files(dbx.DBTX) files.Repository { return m.files }

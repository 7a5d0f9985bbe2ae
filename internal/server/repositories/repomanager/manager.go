package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shareit/internal/dbx"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/files"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/rooms"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// them either on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Rooms(db dbx.DBTX) rooms.Repository
	Files(db dbx.DBTX) files.Repository
}

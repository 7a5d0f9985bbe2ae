// Package files stores file metadata rows. The bytes live in the object store.
package files

import (
	"context"

	"github.com/dmitrijs2005/shareit/internal/server/models"
)

type Repository interface {
	// Create inserts file and fills its ID.
	Create(ctx context.Context, file *models.File) (*models.File, error)
	// ListByRoom returns the room's files, newest upload first.
	ListByRoom(ctx context.Context, roomName string) ([]*models.File, error)
	// GetByID returns common.ErrorNotFound when the row is absent.
	GetByID(ctx context.Context, id string) (*models.File, error)
	// Delete returns common.ErrorNotFound when no row was removed.
	Delete(ctx context.Context, id string) error
}

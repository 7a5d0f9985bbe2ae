// Package rooms stores room records, looked up by room name.
package rooms

import (
	"context"

	"github.com/dmitrijs2005/shareit/internal/server/models"
)

type Repository interface {
	// Create inserts room and fills its ID. A taken name yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, room *models.Room) (*models.Room, error)
	// GetByName returns common.ErrorNotFound when no room has that name.
	GetByName(ctx context.Context, name string) (*models.Room, error)
}

package rooms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/dbx"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements room storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a room row. A unique violation on room_name is reported as
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	query := `
		INSERT INTO rooms (room_name, room_password, delete_password, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		room.Name, room.AccessPassword, room.DeletePassword, room.CreatedAt).Scan(&room.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return room, nil
}

// GetByName fetches the room with exactly this name.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Room, error) {
	query := `
		SELECT id, room_name, room_password, delete_password, created_at FROM rooms
		WHERE room_name = $1
	`
	room := &models.Room{}
	err := r.db.QueryRowContext(ctx, query, name).
		Scan(&room.ID, &room.Name, &room.AccessPassword, &room.DeletePassword, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return room, nil
}

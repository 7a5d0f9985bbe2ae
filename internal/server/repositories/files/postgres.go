package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/dbx"
	"github.com/dmitrijs2005/shareit/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (file_name, file_type, upload_time, storage_url, room_name, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		file.Name, file.MIMEType, file.UploadedAt, file.URL, file.RoomName, file.Size).Scan(&file.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

// ListByRoom returns every file of roomName ordered by upload_time descending.
func (r *PostgresRepository) ListByRoom(ctx context.Context, roomName string) ([]*models.File, error) {
	query := `
		SELECT id, file_name, file_type, upload_time, storage_url, room_name, file_size FROM files
		WHERE room_name = $1
		ORDER BY upload_time DESC
	`
	rows, err := r.db.QueryContext(ctx, query, roomName)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := make([]*models.File, 0)
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.Name, &item.MIMEType, &item.UploadedAt, &item.URL, &item.RoomName, &item.Size); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := `
		SELECT id, file_name, file_type, upload_time, storage_url, room_name, file_size FROM files
		WHERE id = $1
	`
	item := &models.File{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.Name, &item.MIMEType, &item.UploadedAt, &item.URL, &item.RoomName, &item.Size)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return item, nil
}

// Delete removes the row with the given id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

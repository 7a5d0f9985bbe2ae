package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/shareit/internal/catalog"
	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/logging"
	"github.com/dmitrijs2005/shareit/internal/server/blobstore"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ErrOrphanedObject marks an upload whose bytes were stored but whose
// metadata row could not be written. The object stays in the bucket.
var ErrOrphanedObject = errors.New("stored object has no metadata row")

// Upload is one file handed to UploadFile. Size is the declared length of Body.
type Upload struct {
	Name     string
	MIMEType string
	Size     int64
	Body     io.Reader
}

// FileService moves file bytes into the object store and keeps the metadata
// table in step with it.
type FileService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	store         blobstore.Store
	log           logging.Logger
	maxUploadSize int64
	now           func() time.Time
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store blobstore.Store, maxUploadSize int64, log logging.Logger) *FileService {
	return &FileService{
		db:            db,
		repomanager:   m,
		store:         store,
		log:           log.With("module", "files"),
		maxUploadSize: maxUploadSize,
		now:           time.Now,
	}
}

// ListFiles returns the room's files, newest first.
func (s *FileService) ListFiles(ctx context.Context, roomName string) ([]*models.File, error) {
	files, err := s.repomanager.Files(s.db).ListByRoom(ctx, roomName)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	catalog.SortNewestFirst(files)
	return files, nil
}

// GetFile returns one file's metadata. Malformed IDs are reported as
// common.ErrorNotFound.
func (s *FileService) GetFile(ctx context.Context, id string) (*models.File, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Files(s.db).GetByID(ctx, id)
}

// UploadFile stores the bytes under rooms/<room>/<millis>_<name>, then
// records the metadata row. Nothing is rolled back if the second step fails.
func (s *FileService) UploadFile(ctx context.Context, roomName string, up Upload) (*models.File, error) {
	if roomName == "" || strings.TrimSpace(up.Name) == "" || up.Body == nil {
		return nil, common.ErrorValidation
	}
	if up.Size > s.maxUploadSize {
		return nil, common.ErrorTooLarge
	}
	mimeType := up.MIMEType
	if mimeType == "" {
		mimeType = common.DefaultMIMEType
	}

	now := s.now().UTC()
	key := blobstore.ObjectKey(roomName, up.Name, now)
	log := s.log.With("room", roomName, "key", key)

	if err := s.store.Put(ctx, key, up.Body, up.Size, mimeType); err != nil {
		log.Error(ctx, "object upload failed", "error", err)
		return nil, fmt.Errorf("error storing object: %w", err)
	}

	file := &models.File{
		Name:       up.Name,
		MIMEType:   mimeType,
		UploadedAt: now,
		URL:        s.store.PublicURL(key),
		RoomName:   roomName,
		Size:       up.Size,
	}
	created, err := s.repomanager.Files(s.db).Create(ctx, file)
	if err != nil {
		log.Error(ctx, "metadata insert failed, object left orphaned", "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrOrphanedObject, key, err)
	}

	log.Info(ctx, "file uploaded", "id", created.ID, "size", created.Size)
	return created, nil
}

// DeleteFile removes the object behind url and then the metadata row id.
// Object store failures are logged and tolerated; metadata failures are not.
func (s *FileService) DeleteFile(ctx context.Context, id, url string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	key, err := blobstore.KeyFromURL(s.store.Bucket(), url)
	if err != nil {
		s.log.Warn(ctx, "cannot derive object key, skipping object delete", "id", id, "url", url, "error", err)
	} else if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "object delete failed", "id", id, "key", key, "error", err)
	}

	if err := s.repomanager.Files(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting file: %w", err)
	}

	s.log.Info(ctx, "file deleted", "id", id, "key", key)
	return nil
}

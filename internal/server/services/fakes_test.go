package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/dbx"
	"github.com/dmitrijs2005/shareit/internal/server/blobstore"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/files"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/rooms"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeRoomsRepo struct {
	getOut    *models.Room
	getErr    error
	createErr error
	created   *models.Room
}

func (f *fakeRoomsRepo) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	room.ID = "room-1"
	f.created = room
	return room, nil
}

func (f *fakeRoomsRepo) GetByName(ctx context.Context, name string) (*models.Room, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut == nil {
		return nil, common.ErrorNotFound
	}
	return f.getOut, nil
}

type fakeFilesRepo struct {
	listOut   []*models.File
	listErr   error
	createErr error
	getOut    *models.File
	getErr    error
	deleteErr error
	created   *models.File
	deleted   []string
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	file.ID = "11111111-1111-1111-1111-111111111111"
	f.created = file
	return file, nil
}

func (f *fakeFilesRepo) ListByRoom(ctx context.Context, roomName string) ([]*models.File, error) {
	return f.listOut, f.listErr
}

func (f *fakeFilesRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeFilesRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRepoManager struct {
	r *fakeRoomsRepo
	f *fakeFilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Rooms(db dbx.DBTX) rooms.Repository           { return m.r }
func (m *fakeRepoManager) Files(db dbx.DBTX) files.Repository           { return m.f }

// fakeStore records calls and can be told to fail.
type fakeStore struct {
	putErr    error
	deleteErr error
	puts      map[string][]byte
	deleted   []string
}

var _ blobstore.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore { return &fakeStore{puts: map[string][]byte{}} }

func (s *fakeStore) Bucket() string { return "files" }

func (s *fakeStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.puts[key] = data
	return nil
}

func (s *fakeStore) Open(ctx context.Context, key string) (*blobstore.Object, error) {
	data, ok := s.puts[key]
	if !ok {
		return nil, blobstore.ErrObjectNotFound
	}
	return &blobstore.Object{Body: io.NopCloser(bytes.NewReader(data)), Size: int64(len(data))}, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.deleteErr
}

func (s *fakeStore) PublicURL(key string) string { return "http://s3.test/files/" + key }

var errBoom = errors.New("boom")

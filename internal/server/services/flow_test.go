package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/shareit/internal/catalog"
	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/logging"
	"github.com/dmitrijs2005/shareit/internal/server/auth"
	"github.com/dmitrijs2005/shareit/internal/server/blobstore"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomLifecycle_InMemory(t *testing.T) {
	ctx := context.Background()
	rm := repomanager.NewMemoryRepositoryManager()
	store := blobstore.NewMemoryStore(common.Bucket, "http://localhost:8080/storage")

	roomsSvc := NewRoomService(nil, rm, auth.PlainChecker{}, logging.Nop())
	filesSvc := NewFileService(nil, rm, store, 1<<20, logging.Nop())

	_, err := roomsSvc.FindRoom(ctx, "demo")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = roomsSvc.CreateRoom(ctx, "demo", "pw", "del")
	require.NoError(t, err)

	_, err = roomsSvc.CreateRoom(ctx, "demo", "other", "other")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	room, err := roomsSvc.VerifyRoomPassword(ctx, "demo", "pw")
	require.NoError(t, err)
	_, err = roomsSvc.VerifyRoomPassword(ctx, "demo", "nope")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.True(t, roomsSvc.VerifyDeletePassword(room, "del"))

	up, err := filesSvc.UploadFile(ctx, room.Name, Upload{
		Name: "notes.txt", MIMEType: "text/plain", Size: 10, Body: strings.NewReader("0123456789"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	list, err := filesSvc.ListFiles(ctx, room.Name)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "notes.txt", list[0].Name)
	assert.Equal(t, int64(10), list[0].Size)
	assert.Equal(t, catalog.Docs, catalog.CategoryOf(list[0].MIMEType))

	require.NoError(t, filesSvc.DeleteFile(ctx, up.ID, up.URL))
	assert.Equal(t, 0, store.Len())

	list, err = filesSvc.ListFiles(ctx, room.Name)
	require.NoError(t, err)
	assert.Empty(t, list)
}

package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shareit/internal/logging"
	"github.com/dmitrijs2005/shareit/internal/server/blobstore"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/dmitrijs2005/shareit/internal/server/services"
	"github.com/dmitrijs2005/shareit/internal/server/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 2 * time.Minute

// RoomService is what the handlers need from services.RoomService.
type RoomService interface {
	FindRoom(ctx context.Context, name string) (*models.Room, error)
	CreateRoom(ctx context.Context, name, accessPassword, deletePassword string) (*models.Room, error)
	VerifyRoomPassword(ctx context.Context, name, password string) (*models.Room, error)
	VerifyDeletePassword(room *models.Room, password string) bool
}

// FileService is what the handlers need from services.FileService.
type FileService interface {
	ListFiles(ctx context.Context, roomName string) ([]*models.File, error)
	GetFile(ctx context.Context, id string) (*models.File, error)
	UploadFile(ctx context.Context, roomName string, up services.Upload) (*models.File, error)
	DeleteFile(ctx context.Context, id, url string) error
}

// Options wires a router. Objects is set only when the object store has no
// public endpoint of its own (local and memory stores); the router then
// serves it under /storage.
type Options struct {
	Rooms         RoomService
	Files         FileService
	Sessions      *session.Manager
	Objects       blobstore.Store
	Logger        logging.Logger
	MaxUploadSize int64
}

type handler struct {
	rooms         RoomService
	files         FileService
	sessions      *session.Manager
	objects       blobstore.Store
	pages         *pages
	log           logging.Logger
	maxUploadSize int64
	now           func() time.Time
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(opts Options) (http.Handler, error) {
	p, err := loadPages()
	if err != nil {
		return nil, err
	}

	h := &handler{
		rooms:         opts.Rooms,
		files:         opts.Files,
		sessions:      opts.Sessions,
		objects:       opts.Objects,
		pages:         p,
		log:           opts.Logger.With("module", "web"),
		maxUploadSize: opts.MaxUploadSize,
		now:           time.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", h.health)

	r.Get("/", h.home)
	r.Post("/join", h.join)
	r.Get("/create-room", h.createRoomForm)
	r.Post("/create-room", h.createRoom)
	r.Post("/leave", h.leave)
	r.Post("/theme", h.toggleTheme)
	r.Post("/delete-mode", h.toggleDeleteMode)

	r.Route("/files", func(r chi.Router) {
		r.Post("/", h.upload)
		r.Post("/{id}/delete", h.deleteFile)
		r.Get("/{id}/download", h.download)
	})

	if h.objects != nil {
		r.Get("/storage/*", h.serveObject)
	}

	return r, nil
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

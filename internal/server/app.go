// Package server wires the ShareIt application together: table and object
// stores, services, the web router, and graceful shutdown on signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/logging"
	"github.com/dmitrijs2005/shareit/internal/server/auth"
	"github.com/dmitrijs2005/shareit/internal/server/blobstore"
	"github.com/dmitrijs2005/shareit/internal/server/config"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shareit/internal/server/services"
	"github.com/dmitrijs2005/shareit/internal/server/session"
	"github.com/dmitrijs2005/shareit/internal/server/web"
)

// openDB is a seam for tests.
var openDB = func(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *web.Server
}

// NewApp connects the configured stores and builds the HTTP server. Logs go
// to out.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger := logging.New(c.Env, out)

	db, rm, err := initTables(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("table store init error: %w", err)
	}

	store, served, err := initObjects(ctx, c)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	checker, err := auth.NewPasswordChecker(c.PasswordScheme)
	if err != nil {
		closeDB(db)
		return nil, err
	}
	if c.PasswordScheme == config.PasswordSchemePlain {
		logger.Warn(ctx, "room passwords are stored and compared as plain text", "password_scheme", c.PasswordScheme)
	}

	rs := services.NewRoomService(db, rm, checker, logger)
	fs := services.NewFileService(db, rm, store, c.MaxUploadSize, logger)

	opts := web.Options{
		Rooms:         rs,
		Files:         fs,
		Sessions:      session.NewManager(c.SecretKey, c.SessionValidityDuration, strings.HasPrefix(c.PublicBaseURL, "https://")),
		Logger:        logger,
		MaxUploadSize: c.MaxUploadSize,
	}
	if served {
		opts.Objects = store
	}

	router, err := web.NewRouter(opts)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	logger.Info(ctx, "App configured",
		"table_store", c.TableStore, "storage", c.StorageType, "password_scheme", c.PasswordScheme)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: web.NewServer(c.EndpointAddrHTTP, router, logger),
	}, nil
}

func initTables(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	switch c.TableStore {
	case config.TableStoreMemory:
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	case config.TableStorePostgres:
		db, err := openDB(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		rm := repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		return db, rm, nil
	default:
		return nil, nil, fmt.Errorf("unknown table store %q", c.TableStore)
	}
}

// initObjects returns the object store and whether this server must serve
// its objects itself.
func initObjects(ctx context.Context, c *config.Config) (blobstore.Store, bool, error) {
	storageBase := strings.TrimRight(c.PublicBaseURL, "/") + "/storage"

	switch c.StorageType {
	case config.StorageS3:
		s, err := blobstore.NewS3Store(ctx, blobstore.S3Options{
			Region:        c.S3Region,
			AccessKey:     c.S3RootUser,
			SecretKey:     c.S3RootPassword,
			BaseEndpoint:  c.S3BaseEndpoint,
			Bucket:        c.S3Bucket,
			PublicBaseURL: c.S3PublicBaseURL,
		})
		return s, false, err
	case config.StorageLocal:
		s, err := blobstore.NewLocalStore(c.LocalStorageDir, common.Bucket, storageBase)
		return s, true, err
	case config.StorageMemory:
		return blobstore.NewMemoryStore(common.Bucket, storageBase), true, nil
	default:
		return nil, false, fmt.Errorf("unknown storage type %q", c.StorageType)
	}
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeDB(app.db)
	app.logger.Info(ctx, "App stopped")
}

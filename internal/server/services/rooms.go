// Package services contains server-side business logic. This file implements
// RoomService: room lookup, creation and the two password checks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/dbx"
	"github.com/dmitrijs2005/shareit/internal/logging"
	"github.com/dmitrijs2005/shareit/internal/server/auth"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/dmitrijs2005/shareit/internal/server/repositories/repomanager"
)

type RoomService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	checker     auth.PasswordChecker
	log         logging.Logger
	now         func() time.Time
}

// NewRoomService constructs a RoomService. db may be nil when the repository
// manager does not need a database (in-memory tables).
func NewRoomService(db *sql.DB, m repomanager.RepositoryManager, checker auth.PasswordChecker, log logging.Logger) *RoomService {
	return &RoomService{
		db:          db,
		repomanager: m,
		checker:     checker,
		log:         log.With("module", "rooms"),
		now:         time.Now,
	}
}

// FindRoom looks a room up by exact name. A miss is common.ErrorNotFound;
// backend failures come back wrapped and are distinguishable from a miss.
func (s *RoomService) FindRoom(ctx context.Context, name string) (*models.Room, error) {
	room, err := s.repomanager.Rooms(s.db).GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.log.Error(ctx, "room lookup failed", "room", name, "error", err)
		return nil, fmt.Errorf("error finding room: %w", err)
	}
	return room, nil
}

// CreateRoom stores a new room. All three fields are required after
// trimming, the name is capped at common.MaxRoomNameLength runes and a taken
// name yields common.ErrorAlreadyExists.
func (s *RoomService) CreateRoom(ctx context.Context, name, accessPassword, deletePassword string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	accessPassword = strings.TrimSpace(accessPassword)
	deletePassword = strings.TrimSpace(deletePassword)
	if name == "" || accessPassword == "" || deletePassword == "" {
		return nil, common.ErrorValidation
	}
	if utf8.RuneCountInString(name) > common.MaxRoomNameLength {
		return nil, common.ErrorValidation
	}

	access, err := s.checker.Prepare(accessPassword)
	if err != nil {
		return nil, err
	}
	del, err := s.checker.Prepare(deletePassword)
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		Name:           name,
		AccessPassword: access,
		DeletePassword: del,
		CreatedAt:      s.now().UTC(),
	}

	var created *models.Room
	err = s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Rooms(tx)

		_, err := repo.GetByName(ctx, name)
		switch {
		case err == nil:
			return common.ErrorAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		created, err = repo.Create(ctx, room)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.log.Error(ctx, "room creation failed", "room", name, "error", err)
		return nil, fmt.Errorf("error creating room: %w", err)
	}

	s.log.Info(ctx, "room created", "room", created.Name, "id", created.ID)
	return created, nil
}

// VerifyRoomPassword returns the room when password opens it. A missing room
// is common.ErrorNotFound and a wrong password common.ErrorUnauthorized.
func (s *RoomService) VerifyRoomPassword(ctx context.Context, name, password string) (*models.Room, error) {
	room, err := s.FindRoom(ctx, name)
	if err != nil {
		return nil, err
	}
	if !s.checker.Check(room.AccessPassword, password) {
		return nil, common.ErrorUnauthorized
	}
	return room, nil
}

// VerifyDeletePassword checks password against the room's delete password.
func (s *RoomService) VerifyDeletePassword(room *models.Room, password string) bool {
	if room == nil {
		return false
	}
	return s.checker.Check(room.DeletePassword, password)
}

// inTx runs fn in a transaction when a database is configured and directly
// otherwise.
func (s *RoomService) inTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

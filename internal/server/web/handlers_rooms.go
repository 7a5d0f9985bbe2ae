package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/shareit/internal/catalog"
	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/dmitrijs2005/shareit/internal/server/session"
)

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	data := &pageData{Session: sess, Flash: h.sessions.PopFlash(w, r)}

	if !sess.InRoom() {
		data.Title = "Join a room"
		data.RoomName = strings.TrimSpace(r.URL.Query().Get("roomName"))
		h.render(w, r, "join", http.StatusOK, data)
		return
	}

	data.Title = sess.Room.Name
	data.Query = r.URL.Query().Get("q")
	data.Category = catalog.ParseCategory(r.URL.Query().Get("category"))
	data.Options = catalog.FilterOptions

	files, err := h.files.ListFiles(r.Context(), sess.Room.Name)
	if err != nil {
		h.log.Error(r.Context(), "list files failed", "room", sess.Room.Name, "error", err)
		data.Flash = &session.Flash{Kind: session.FlashError, Message: "Failed to load files"}
		files = nil
	}

	data.TotalFiles = len(files)
	now := h.now()
	for _, f := range catalog.Filter(files, data.Query, data.Category) {
		data.Files = append(data.Files, newFileView(f, now))
	}

	h.render(w, r, "dashboard", http.StatusOK, data)
}

func (h *handler) join(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("roomName"))
	password := strings.TrimSpace(r.PostFormValue("roomPassword"))
	if name == "" || password == "" {
		h.sessions.Flash(w, session.FlashError, "Please fill in all fields")
		redirect(w, r, "/")
		return
	}
	if utf8.RuneCountInString(name) > common.MaxRoomNameLength {
		h.sessions.Flash(w, session.FlashError, "Invalid room name or password")
		redirect(w, r, "/")
		return
	}

	room, err := h.rooms.VerifyRoomPassword(r.Context(), name, password)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.sessions.Flash(w, session.FlashError, fmt.Sprintf("Room %q doesn't exist. Redirecting to create page.", name))
		redirect(w, r, "/create-room?roomName="+url.QueryEscape(name))
		return
	case errors.Is(err, common.ErrorUnauthorized):
		h.sessions.Flash(w, session.FlashError, "Invalid room name or password")
		redirect(w, r, "/")
		return
	case err != nil:
		h.sessions.Flash(w, session.FlashError, "Failed to join room")
		redirect(w, r, "/")
		return
	}

	if !h.enterRoom(w, r, room) {
		return
	}
	h.sessions.Flash(w, session.FlashSuccess, fmt.Sprintf("Welcome to %s!", room.Name))
	redirect(w, r, "/")
}

func (h *handler) createRoomForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "create", http.StatusOK, &pageData{
		Title:    "Create a room",
		Session:  h.sessions.Load(r),
		Flash:    h.sessions.PopFlash(w, r),
		RoomName: strings.TrimSpace(r.URL.Query().Get("roomName")),
	})
}

func (h *handler) createRoom(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("roomName"))
	password := strings.TrimSpace(r.PostFormValue("roomPassword"))
	deletePassword := strings.TrimSpace(r.PostFormValue("deletePassword"))
	back := "/create-room?roomName=" + url.QueryEscape(name)

	if name == "" || password == "" || deletePassword == "" {
		h.sessions.Flash(w, session.FlashError, "Please fill in all fields")
		redirect(w, r, back)
		return
	}
	if utf8.RuneCountInString(name) > common.MaxRoomNameLength {
		h.sessions.Flash(w, session.FlashError, fmt.Sprintf("Room name must be at most %d characters", common.MaxRoomNameLength))
		redirect(w, r, "/create-room")
		return
	}

	room, err := h.rooms.CreateRoom(r.Context(), name, password, deletePassword)
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		h.sessions.Flash(w, session.FlashError, "Room already exists")
		redirect(w, r, back)
		return
	case err != nil:
		h.sessions.Flash(w, session.FlashError, "Failed to create room")
		redirect(w, r, back)
		return
	}

	if !h.enterRoom(w, r, room) {
		return
	}
	h.sessions.Flash(w, session.FlashSuccess, fmt.Sprintf("Room %q created successfully!", room.Name))
	redirect(w, r, "/")
}

func (h *handler) leave(w http.ResponseWriter, r *http.Request) {
	h.sessions.Leave(w)
	h.sessions.Flash(w, session.FlashSuccess, "Left the room")
	redirect(w, r, "/")
}

func (h *handler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	sess.DarkMode = !sess.DarkMode
	if err := h.sessions.Save(w, sess); err != nil {
		h.log.Error(r.Context(), "save session failed", "error", err)
	}
	redirectBack(w, r)
}

func (h *handler) toggleDeleteMode(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.InRoom() {
		redirect(w, r, "/")
		return
	}

	if sess.DeleteMode {
		sess.DeleteMode = false
		h.saveAndFlash(w, r, sess, session.FlashSuccess, "Delete mode disabled")
		redirectBack(w, r)
		return
	}

	room, ok := h.currentRoom(w, r, sess)
	if !ok {
		return
	}
	if !h.rooms.VerifyDeletePassword(room, r.PostFormValue("deletePassword")) {
		h.sessions.Flash(w, session.FlashError, "Incorrect delete password")
		redirectBack(w, r)
		return
	}

	sess.DeleteMode = true
	h.saveAndFlash(w, r, sess, session.FlashSuccess, "Delete mode enabled")
	redirectBack(w, r)
}

// enterRoom points the session at room with delete mode off. On failure it
// has already answered the request.
func (h *handler) enterRoom(w http.ResponseWriter, r *http.Request, room *models.Room) bool {
	sess := h.sessions.Load(r)
	sess.Room = &session.RoomRef{ID: room.ID, Name: room.Name}
	sess.DeleteMode = false
	if err := h.sessions.Save(w, sess); err != nil {
		h.log.Error(r.Context(), "save session failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return false
	}
	return true
}

// currentRoom reloads the joined room. A room that vanished ends the session.
func (h *handler) currentRoom(w http.ResponseWriter, r *http.Request, sess session.Session) (*models.Room, bool) {
	room, err := h.rooms.FindRoom(r.Context(), sess.Room.Name)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.sessions.Leave(w)
		h.sessions.Flash(w, session.FlashError, "Room no longer exists")
		redirect(w, r, "/")
		return nil, false
	case err != nil:
		h.sessions.Flash(w, session.FlashError, "Failed to load room")
		redirectBack(w, r)
		return nil, false
	}
	return room, true
}

func (h *handler) saveAndFlash(w http.ResponseWriter, r *http.Request, sess session.Session, kind session.FlashKind, msg string) {
	if err := h.sessions.Save(w, sess); err != nil {
		h.log.Error(r.Context(), "save session failed", "error", err)
		h.sessions.Flash(w, session.FlashError, "Something went wrong")
		return
	}
	h.sessions.Flash(w, kind, msg)
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// redirectBack returns to the referring page of this site, or to /.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	to := "/"
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" && (ref.Host == "" || ref.Host == r.Host) {
		to = ref.Path
		if ref.RawQuery != "" {
			to += "?" + ref.RawQuery
		}
	}
	redirect(w, r, to)
}

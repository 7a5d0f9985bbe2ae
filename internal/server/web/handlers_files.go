package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/server/blobstore"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/dmitrijs2005/shareit/internal/server/services"
	"github.com/dmitrijs2005/shareit/internal/server/session"
	"github.com/go-chi/chi/v5"
)

const multipartMemory = 8 << 20

func (h *handler) upload(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.InRoom() {
		redirect(w, r, "/")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sessions.Flash(w, session.FlashError, "File is too large")
		} else {
			h.sessions.Flash(w, session.FlashError, "Failed to upload file")
		}
		redirectBack(w, r)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.sessions.Flash(w, session.FlashError, "Please choose a file")
		redirectBack(w, r)
		return
	}
	defer file.Close()

	uploaded, err := h.files.UploadFile(r.Context(), sess.Room.Name, services.Upload{
		Name:     header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Body:     file,
	})
	switch {
	case errors.Is(err, common.ErrorTooLarge):
		h.sessions.Flash(w, session.FlashError, "File is too large")
	case err != nil:
		h.sessions.Flash(w, session.FlashError, "Failed to upload file")
	default:
		h.sessions.Flash(w, session.FlashSuccess, fmt.Sprintf("%s uploaded successfully!", uploaded.Name))
	}
	redirectBack(w, r)
}

func (h *handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.InRoom() {
		redirect(w, r, "/")
		return
	}

	file, ok := h.roomFile(w, r, sess)
	if !ok {
		return
	}

	if !sess.DeleteMode {
		room, ok := h.currentRoom(w, r, sess)
		if !ok {
			return
		}
		if !h.rooms.VerifyDeletePassword(room, r.PostFormValue("deletePassword")) {
			h.sessions.Flash(w, session.FlashError, "Incorrect delete password")
			redirectBack(w, r)
			return
		}
	}

	if err := h.files.DeleteFile(r.Context(), file.ID, file.URL); err != nil {
		h.log.Error(r.Context(), "delete file failed", "id", file.ID, "error", err)
		h.sessions.Flash(w, session.FlashError, "Failed to delete file")
		redirectBack(w, r)
		return
	}

	h.sessions.Flash(w, session.FlashSuccess, fmt.Sprintf("%s deleted successfully", file.Name))
	redirectBack(w, r)
}

func (h *handler) download(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.InRoom() {
		redirect(w, r, "/")
		return
	}

	file, ok := h.roomFile(w, r, sess)
	if !ok {
		return
	}
	http.Redirect(w, r, file.URL, http.StatusFound)
}

// roomFile loads the {id} file and checks it belongs to the joined room.
func (h *handler) roomFile(w http.ResponseWriter, r *http.Request, sess session.Session) (*models.File, bool) {
	file, err := h.files.GetFile(r.Context(), chi.URLParam(r, "id"))
	if err == nil && file.RoomName != sess.Room.Name {
		err = common.ErrorNotFound
	}
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.sessions.Flash(w, session.FlashError, "File not found")
		redirect(w, r, "/")
		return nil, false
	case err != nil:
		h.log.Error(r.Context(), "get file failed", "error", err)
		h.sessions.Flash(w, session.FlashError, "Failed to load file")
		redirect(w, r, "/")
		return nil, false
	}
	return file, true
}

// serveObject streams an object of the local or in-memory store. Paths look
// like /storage/<bucket>/<key>.
func (h *handler) serveObject(w http.ResponseWriter, r *http.Request) {
	prefix := "/storage/" + h.objects.Bucket() + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, prefix)

	obj, err := h.objects.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, blobstore.ErrObjectNotFound) {
			http.NotFound(w, r)
			return
		}
		h.log.Error(r.Context(), "open object failed", "key", key, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "sandbox")
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.log.Warn(r.Context(), "object stream interrupted", "key", key, "error", err)
	}
}

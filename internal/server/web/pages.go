package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shareit/internal/catalog"
	"github.com/dmitrijs2005/shareit/internal/server/models"
	"github.com/dmitrijs2005/shareit/internal/server/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type pages struct {
	byName map[string]*template.Template
}

func loadPages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template)}
	for _, name := range []string{"join", "create", "dashboard"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		p.byName[name] = t
	}
	return p, nil
}

type pageData struct {
	Title   string
	Session session.Session
	Flash   *session.Flash

	// join and create forms
	RoomName string

	// dashboard
	Files      []fileView
	TotalFiles int
	Query      string
	Category   catalog.Category
	Options    []catalog.Category
}

type fileView struct {
	*models.File
	Category catalog.Category
	Icon     string
	Size     string
	Age      string
	IsImage  bool
}

func newFileView(f *models.File, now time.Time) fileView {
	c := catalog.CategoryOf(f.MIMEType)
	return fileView{
		File:     f,
		Category: c,
		Icon:     catalog.Icon(c),
		Size:     catalog.FormatFileSize(f.Size),
		Age:      catalog.FormatRelativeTime(f.UploadedAt, now),
		IsImage:  c == catalog.Images,
	}
}

// render executes the page into a buffer first so a template error still
// produces a clean 500.
func (h *handler) render(w http.ResponseWriter, r *http.Request, name string, status int, data *pageData) {
	t, ok := h.pages.byName[name]
	if !ok {
		h.log.Error(r.Context(), "unknown page", "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.Error(r.Context(), "render failed", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

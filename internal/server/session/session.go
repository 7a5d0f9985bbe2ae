// Package session keeps per-browser state in cookies: the joined room and
// delete mode in a signed token, the theme flag, and one-shot notifications.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shareit/internal/common"
	"github.com/dmitrijs2005/shareit/internal/server/auth"
)

// RoomRef identifies the joined room. Passwords never leave the server.
type RoomRef struct {
	ID   string
	Name string
}

type Session struct {
	Room       *RoomRef
	DeleteMode bool
	DarkMode   bool
}

// InRoom reports whether the browser has joined a room.
func (s Session) InRoom() bool { return s.Room != nil }

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a notification shown once on the next page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

const themeMaxAge = 365 * 24 * time.Hour

type Manager struct {
	secret   []byte
	validity time.Duration
	secure   bool
}

// NewManager returns a Manager signing room tokens with secret. secure marks
// the cookies HTTPS-only.
func NewManager(secret string, validity time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), validity: validity, secure: secure}
}

// Load reads the session from r. A missing, tampered or expired room token
// means no room is joined; a malformed theme cookie means light mode.
func (m *Manager) Load(r *http.Request) Session {
	var s Session

	if c, err := r.Cookie(common.SessionCookieName); err == nil {
		if claims, err := auth.ParseToken(c.Value, m.secret); err == nil {
			s.Room = &RoomRef{ID: claims.RoomID, Name: claims.RoomName}
			s.DeleteMode = claims.DeleteMode
		}
	}

	if c, err := r.Cookie(common.ThemeCookieName); err == nil {
		var dark bool
		if json.Unmarshal([]byte(c.Value), &dark) == nil {
			s.DarkMode = dark
		}
	}

	return s
}

// Save writes s back. Without a room the room cookie is cleared and delete
// mode is dropped with it.
func (m *Manager) Save(w http.ResponseWriter, s Session) error {
	if s.Room == nil {
		m.clear(w, common.SessionCookieName)
	} else {
		token, err := auth.GenerateToken(auth.Claims{
			RoomID:     s.Room.ID,
			RoomName:   s.Room.Name,
			DeleteMode: s.DeleteMode,
		}, m.secret, m.validity)
		if err != nil {
			return err
		}
		http.SetCookie(w, m.cookie(common.SessionCookieName, token, m.validity, true))
	}

	dark, _ := json.Marshal(s.DarkMode)
	http.SetCookie(w, m.cookie(common.ThemeCookieName, string(dark), themeMaxAge, false))
	return nil
}

// Leave forgets the room and delete mode. The theme is kept.
func (m *Manager) Leave(w http.ResponseWriter) {
	m.clear(w, common.SessionCookieName)
}

// Flash queues a notification for the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, kind FlashKind, msg string) {
	raw, err := json.Marshal(Flash{Kind: kind, Message: msg})
	if err != nil {
		return
	}
	http.SetCookie(w, m.cookie(common.FlashCookieName, base64.RawURLEncoding.EncodeToString(raw), time.Minute, true))
}

// PopFlash returns the queued notification, if any, and clears it.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(common.FlashCookieName)
	if err != nil {
		return nil
	}
	m.clear(w, common.FlashCookieName)

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}

func (m *Manager) cookie(name, value string, maxAge time.Duration, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: httpOnly,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

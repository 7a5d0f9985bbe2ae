package common

// Bucket is the object-store bucket holding every uploaded file.
const Bucket = "files"

// Cookie names used by the web session.
const (
	SessionCookieName = "shareit-session"
	ThemeCookieName   = "shareit-darkmode"
	FlashCookieName   = "shareit-flash"
)

// DefaultMIMEType is stored when an upload does not declare its type.
const DefaultMIMEType = "application/octet-stream"

// MaxRoomNameLength caps room names, in runes. The name travels in the
// session and flash cookies, which browsers drop past about 4 KB.
const MaxRoomNameLength = 100

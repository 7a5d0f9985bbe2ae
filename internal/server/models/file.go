package models

import "time"

// File is the metadata row of an uploaded file. The bytes live in the
// object store; URL is their public location.
type File struct {
	ID         string
	Name       string
	MIMEType   string
	UploadedAt time.Time
	URL        string
	RoomName   string
	Size       int64
}

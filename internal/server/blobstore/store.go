// Package blobstore holds the object stores that keep uploaded file bytes.
// Every store addresses objects by key inside one bucket and hands out a
// public URL per object.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrNoBucketInURL  = errors.New("bucket segment not found in url")
)

// Object is an opened stored object. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Store is the object store used by the file service.
type Store interface {
	Bucket() string
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	// PublicURL is the address clients download key from.
	PublicURL(key string) string
}

// ObjectKey builds the storage key of an upload: rooms/<room>/<unix-millis>_<name>.
func ObjectKey(roomName, fileName string, at time.Time) string {
	return fmt.Sprintf("rooms/%s/%d_%s", roomName, at.UnixMilli(), fileName)
}

// KeyFromURL recovers the storage key from a public URL: every path segment
// after the first one equal to bucket, URL-decoded.
func KeyFromURL(bucket, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse storage url: %w", err)
	}

	parts := strings.Split(u.EscapedPath(), "/")
	for i, p := range parts {
		if p != bucket {
			continue
		}
		rest := parts[i+1:]
		if len(rest) == 0 {
			break
		}
		for j, seg := range rest {
			dec, err := url.PathUnescape(seg)
			if err != nil {
				return "", fmt.Errorf("decode storage url: %w", err)
			}
			rest[j] = dec
		}
		key := strings.Join(rest, "/")
		if key == "" {
			break
		}
		return key, nil
	}
	return "", ErrNoBucketInURL
}

func publicURL(base, bucket, key string) string {
	segs := strings.Split(key, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(bucket) + "/" + strings.Join(segs, "/")
}

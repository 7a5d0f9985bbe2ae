package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/shareit/internal/filex"
)

// LocalStore keeps objects as files under <root>/<bucket>/<key>. The web
// server exposes them below its /storage prefix.
type LocalStore struct {
	dir           string
	bucket        string
	publicBaseURL string
}

// NewLocalStore creates the bucket directory under root if needed.
func NewLocalStore(root, bucket, publicBaseURL string) (*LocalStore, error) {
	dir, err := filex.EnsureDir(filepath.Join(root, bucket))
	if err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, bucket: bucket, publicBaseURL: publicBaseURL}, nil
}

func (s *LocalStore) Bucket() string { return s.bucket }

func (s *LocalStore) path(key string) (string, error) {
	p := filepath.Join(s.dir, filepath.FromSlash(key))
	if !filex.WithinDir(s.dir, p) || p == s.dir {
		return "", fmt.Errorf("key %q escapes the store", key)
	}
	return p, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o770); err != nil {
		return err
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o660)
	if err != nil {
		return err
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && size >= 0 && n != size {
		err = fmt.Errorf("short write: %d of %d bytes", n, size)
	}
	if err != nil {
		_ = os.Remove(p)
		return err
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, ErrObjectNotFound
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, ErrObjectNotFound
	}
	return &Object{Body: f, ContentType: mime.TypeByExtension(filepath.Ext(p)), Size: st.Size()}, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) PublicURL(key string) string {
	return publicURL(s.publicBaseURL, s.bucket, key)
}

// Package media stores record photos as blobs. Records carry only the object
// key; the bytes live here, on disk or in an S3-compatible bucket.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"autocare/internal/core"
)

// ErrObjectNotFound is returned when no blob exists under the key.
var ErrObjectNotFound = errors.New("media: object not found")

// Store is the photo blob contract. Put returns the object key callers embed
// in the owning record's Photo field.
type Store interface {
	Put(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// extensionFor maps the accepted upload content types to file extensions.
// Anything else is rejected before a byte is written.
func extensionFor(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("media: unsupported content type %q", contentType)
	}
}

func newKey(contentType string) (string, error) {
	ext, err := extensionFor(contentType)
	if err != nil {
		return "", err
	}
	return "photos/" + core.GenerateID() + ext, nil
}

// FileMedia keeps blobs under a directory, one file per object key.
type FileMedia struct {
	root string
}

func NewFileMedia(root string) (*FileMedia, error) {
	if err := os.MkdirAll(filepath.Join(root, "photos"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &FileMedia{root: root}, nil
}

func (m *FileMedia) Put(_ context.Context, reader io.Reader, _ int64, contentType string) (string, error) {
	key, err := newKey(contentType)
	if err != nil {
		return "", err
	}
	path := m.pathFor(key)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create upload temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close photo: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("finalize photo: %w", err)
	}
	return key, nil
}

func (m *FileMedia) Get(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(m.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	return f, nil
}

func (m *FileMedia) Delete(_ context.Context, key string) error {
	err := os.Remove(m.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// pathFor flattens the key so a crafted key cannot escape the media root.
func (m *FileMedia) pathFor(key string) string {
	clean := filepath.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	return filepath.Join(m.root, clean)
}

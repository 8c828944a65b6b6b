package assets

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a store has no file with the given name.
	ErrNotFound = errors.New("assets: not found")

	// ErrInvalidName is returned for names that could escape the store root.
	ErrInvalidName = errors.New("assets: invalid name")
)

// Info describes an opened asset.
type Info struct {
	Name        string
	Size        int64
	ModTime     time.Time
	ContentType string
	ETag        string
}

// Store is a read-only source of assets keyed by slash-separated names.
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, Info, error)
}

// CleanName validates a slash-separated asset name. It rejects absolute
// paths, dot segments, backslashes and NUL bytes rather than cleaning them
// away, so a request never resolves to a different file than it names.
func CleanName(name string) (string, error) {
	if name == "" || strings.IndexByte(name, 0) != -1 || strings.Contains(name, "\\") {
		return "", ErrInvalidName
	}
	if strings.HasPrefix(name, "/") {
		return "", ErrInvalidName
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "." || seg == ".." {
			return "", ErrInvalidName
		}
	}

	clean := path.Clean(name)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidName
	}
	return clean, nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

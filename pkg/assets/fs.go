package assets

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"os"
)

//go:embed static
var embedded embed.FS

// FSStore serves assets from an fs.FS.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore returns a store reading from fsys.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// NewEmbedStore returns the store compiled into the binary.
func NewEmbedStore() *FSStore {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return NewFSStore(sub)
}

// NewDirStore returns a store reading from dir on disk.
func NewDirStore(dir string) *FSStore {
	return NewFSStore(os.DirFS(dir))
}

// Open implements Store.
func (s *FSStore) Open(_ context.Context, name string) (io.ReadCloser, Info, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, Info{}, err
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Info{}, ErrNotFound
		}
		return nil, Info{}, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Info{}, err
	}
	if stat.IsDir() {
		f.Close()
		return nil, Info{}, ErrNotFound
	}

	return f, Info{
		Name:        name,
		Size:        stat.Size(),
		ModTime:     stat.ModTime(),
		ContentType: contentType(name),
	}, nil
}

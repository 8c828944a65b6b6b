package assets

import (
	"context"
	"errors"
	"io"
	"testing"
	"testing/fstest"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"homepage.css", "homepage.css", false},
		{"fonts/a.woff2", "fonts/a.woff2", false},
		{"a//b.css", "a/b.css", false},
		{"", "", true},
		{"/etc/passwd", "", true},
		{"../secret", "", true},
		{"a/./b", "", true},
		{"a\\b", "", true},
		{"a\x00b", "", true},
	}
	for _, tt := range tests {
		got, err := CleanName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("CleanName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEmbedStoreHasStylesheet(t *testing.T) {
	rc, info, err := NewEmbedStore().Open(context.Background(), "homepage.css")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if len(data) == 0 || int64(len(data)) != info.Size {
		t.Errorf("read %d bytes, info.Size = %d", len(data), info.Size)
	}
	if info.ContentType != "text/css; charset=utf-8" {
		t.Errorf("ContentType = %q", info.ContentType)
	}
}

func TestFSStoreNotFound(t *testing.T) {
	store := NewFSStore(fstest.MapFS{
		"dir/file.css": &fstest.MapFile{Data: []byte("a{}")},
	})

	for _, name := range []string{"missing.css", "dir"} {
		if _, _, err := store.Open(context.Background(), name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Open(%q) error = %v, want ErrNotFound", name, err)
		}
	}
	if _, _, err := store.Open(context.Background(), "../x"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Open(../x) error = %v, want ErrInvalidName", err)
	}
}

func TestDirStore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "homepage.css", "body{}")

	rc, info, err := NewDirStore(dir).Open(context.Background(), "homepage.css")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()
	if info.Name != "homepage.css" || info.Size != 6 {
		t.Errorf("info = %+v", info)
	}
}

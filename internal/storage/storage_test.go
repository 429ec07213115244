package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStore_SaveAndServePath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "/media/")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	if s.URLPrefix != "/media" {
		t.Fatalf("expected trailing slash trimmed, got %q", s.URLPrefix)
	}

	url, err := s.Save(context.Background(), "jpg", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/media/") || !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("unexpected url %q", url)
	}

	// The file must exist on disk with the saved contents.
	name := strings.TrimPrefix(url, "/media/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("content mismatch: %q", data)
	}

	// No temp leftovers after a successful save.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "upload-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestDiskStore_SaveCancelledContext(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), "/media")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Save(ctx, ".png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

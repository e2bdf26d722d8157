package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jslate/intake/pkg/storage"
)

func newStorage(t *testing.T) (storage.System, string) {
	t.Helper()

	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sys, err := storage.New(&storage.Config{Root: root}, logger)
	if err != nil {
		t.Fatalf("storage init failed: %v", err)
	}
	return sys, root
}

func TestUploadAndDownload(t *testing.T) {
	sys, root := newStorage(t)
	ctx := context.Background()

	path, err := sys.Upload(ctx, "doc.pdf", strings.NewReader("contents"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("artifact path %s not under root %s", path, root)
	}

	reader, err := sys.Download(ctx, "doc.pdf")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "contents" {
		t.Errorf("downloaded %q, want contents", data)
	}
}

func TestDownloadMissing(t *testing.T) {
	sys, _ := newStorage(t)

	_, err := sys.Download(context.Background(), "missing.pdf")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	sys, _ := newStorage(t)
	ctx := context.Background()

	if _, err := sys.Upload(ctx, "doc.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := sys.Delete(ctx, "doc.pdf"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err := sys.Exists(ctx, "doc.pdf")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Error("artifact should not exist after delete")
	}

	if err := sys.Delete(ctx, "doc.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestExists(t *testing.T) {
	sys, _ := newStorage(t)
	ctx := context.Background()

	exists, err := sys.Exists(ctx, "doc.pdf")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Error("artifact should not exist before upload")
	}

	if _, err := sys.Upload(ctx, "doc.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	exists, err = sys.Exists(ctx, "doc.pdf")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Error("artifact should exist after upload")
	}
}

func TestKeyValidation(t *testing.T) {
	sys, _ := newStorage(t)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty", "", storage.ErrEmptyKey},
		{"traversal", "../escape.pdf", storage.ErrInvalidKey},
		{"slash", "nested/key.pdf", storage.ErrInvalidKey},
		{"backslash", `nested\key.pdf`, storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sys.Upload(ctx, tt.key, strings.NewReader("x")); !errors.Is(err, tt.want) {
				t.Errorf("upload error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPathResolvesUnderRoot(t *testing.T) {
	sys, root := newStorage(t)

	got := sys.Path("report.pdf")
	want := filepath.Join(root, "report.pdf")
	if got != want {
		t.Errorf("Path = %s, want %s", got, want)
	}
}

func TestUploadOverwrites(t *testing.T) {
	sys, _ := newStorage(t)
	ctx := context.Background()

	if _, err := sys.Upload(ctx, "doc.pdf", strings.NewReader("first")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	path, err := sys.Upload(ctx, "doc.pdf", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("contents = %q, want second", data)
	}
}

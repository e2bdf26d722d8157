// Package storage provides artifact storage operations with a local
// filesystem implementation. Uploaded documents and rendered reports are
// stored as loose files named by job identifier under a configured root.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jslate/intake/pkg/lifecycle"
)

// System manages artifact storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the storage root.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to a file at the given key and returns its path.
	Upload(ctx context.Context, key string, reader io.Reader) (string, error)
	// Download returns a stream for the file at the given key. The caller must
	// close the reader. Returns ErrNotFound if the file does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the file at the given key. Returns ErrNotFound if the file
	// does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a file exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
	// Path returns the absolute path a key resolves to within the root.
	Path(key string) string
}

type filesystem struct {
	root   string
	logger *slog.Logger
}

// New creates a filesystem storage system rooted at cfg.Root.
// The root directory is created on Start, not here.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	return &filesystem{
		root:   root,
		logger: logger.With("system", "storage", "root", root),
	}, nil
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting storage system")

	lc.OnStartup(func() {
		if err := os.MkdirAll(f.root, 0o755); err != nil {
			f.logger.Error("storage root initialization failed", "error", err)
			return
		}
		f.logger.Info("storage root ready")
	})

	return nil
}

func (f *filesystem) Upload(ctx context.Context, key string, reader io.Reader) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := f.Path(key)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artifact %s: %w", key, err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("write artifact %s: %w", key, err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close artifact %s: %w", key, err)
	}

	return path, nil
}

func (f *filesystem) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open artifact %s: %w", key, err)
	}

	return file, nil
}

func (f *filesystem) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(f.Path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete artifact %s: %w", key, err)
	}

	return nil
}

func (f *filesystem) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("check artifact existence %s: %w", key, err)
	}

	return true, nil
}

func (f *filesystem) Path(key string) string {
	return filepath.Join(f.root, key)
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}

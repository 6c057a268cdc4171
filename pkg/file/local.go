package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps each key as a file under root. Keys that resolve
// outside root are rejected with ErrInvalidPath.
type LocalStorage struct {
	root string
	mode os.FileMode
}

// LocalOption configures a LocalStorage.
type LocalOption func(*LocalStorage)

// WithFileMode sets the permission bits of written files. Default 0600.
func WithFileMode(mode os.FileMode) LocalOption {
	return func(s *LocalStorage) { s.mode = mode }
}

// NewLocalStorage makes root absolute and creates it with mode 0700 when missing.
func NewLocalStorage(root string, opts ...LocalOption) (*LocalStorage, error) {
	if root == "" {
		return nil, ErrInvalidConfig
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Join(ErrFailedToGetAbsolutePath, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return nil, errors.Join(ErrFailedToCreateDirectory, err)
	}

	s := &LocalStorage{root: abs, mode: 0o600}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Read returns (nil, nil) for a missing key.
func (s *LocalStorage) Read(ctx context.Context, key string) ([]byte, error) {
	name, err := s.path(ctx, key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return data, nil
}

// Write replaces the file atomically: readers see the old bytes or the new
// ones, never a prefix.
func (s *LocalStorage) Write(ctx context.Context, key string, data []byte) error {
	name, err := s.path(ctx, key)
	if err != nil {
		return err
	}
	if name == s.root {
		return fmt.Errorf("%w: %q", ErrIsDirectory, key)
	}

	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Join(ErrFailedToCreateDirectory, err)
	}
	if err := replaceFile(dir, name, data, s.mode); err != nil {
		return errors.Join(ErrFailedToWriteFile, err)
	}
	return nil
}

func replaceFile(dir, name string, data []byte, mode os.FileMode) (err error) {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}

// Delete removes the file under key. A missing key yields ErrFileNotFound.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	name, err := s.path(ctx, key)
	if err != nil {
		return err
	}

	info, err := os.Stat(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %q", ErrFileNotFound, key)
	case err != nil:
		return errors.Join(ErrFailedToDeleteFile, err)
	case info.IsDir():
		return fmt.Errorf("%w: %q", ErrIsDirectory, key)
	}

	if err := os.Remove(name); err != nil {
		return errors.Join(ErrFailedToDeleteFile, err)
	}
	return nil
}

// Exists reports whether key names a regular file.
func (s *LocalStorage) Exists(ctx context.Context, key string) bool {
	name, err := s.path(ctx, key)
	if err != nil {
		return false
	}
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// path maps key to an absolute file name confined to s.root.
func (s *LocalStorage) path(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Join(s.root, filepath.Clean(key))
	if name != s.root && !strings.HasPrefix(name, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return name, nil
}

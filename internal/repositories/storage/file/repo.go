package filerepo

import (
	"docserver/internal/models"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const pkg = "fileRepo/"

type repository struct {
	basePath string
}

func NewRepository(basePath string) *repository {
	return &repository{basePath: basePath}
}

func (r *repository) SaveFile(key string, reader io.Reader) error {
	op := pkg + "SaveFile"

	if err := os.MkdirAll(r.basePath, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	file, err := os.Create(r.path(key))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		_ = file.Close()
		_ = os.Remove(r.path(key))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) LoadFile(key string) (io.ReadCloser, error) {
	op := pkg + "LoadFile"

	file, err := os.Open(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrVersionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return file, nil
}

func (r *repository) DeleteFile(key string) error {
	op := pkg + "DeleteFile"

	if err := os.Remove(r.path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, models.ErrVersionNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// path keeps keys inside the base dir. Keys are server-generated uuids,
// Base is still applied so a bad key cannot escape.
func (r *repository) path(key string) string {
	return filepath.Join(r.basePath, filepath.Base(key))
}

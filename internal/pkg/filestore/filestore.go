package filestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/schoolhub/registrar/internal/pkg/logger"
)

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create directory")
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// TempPath returns a sibling of path with a unique suffix. Writers produce
// the temp file first and rename it into place, so a failed write never
// leaves a truncated file at the target path.
func TempPath(path string) string {
	return path + "." + uuid.New().String() + ".tmp"
}

// WriteAtomic writes data to path through a uniquely named temp file in the
// same directory, renamed into place on success. Missing parent
// directories are created.
func WriteAtomic(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	tmp := TempPath(path)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", tmp).Msg("Failed to write temp file")
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		// Attempt to remove the orphaned temp file
		_ = os.Remove(tmp)
		logger.Error().Err(err).Str("path", path).Msg("Failed to move temp file into place")
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schoolhub/registrar/internal/pkg/filestore"
	"github.com/schoolhub/registrar/internal/pkg/logger"
)

// backupTimeFormat produces names like school_backup_20240131_154502.db
const backupTimeFormat = "20060102_150405"

// DefaultBackupName returns the timestamped file name used when no
// explicit backup target is given: <dbstem>_backup_<YYYYMMDD_HHMMSS>.db.
func DefaultBackupName(dbPath string, now time.Time) string {
	base := filepath.Base(dbPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_backup_%s.db", stem, now.Format(backupTimeFormat))
}

// resolveBackupTarget turns the user-supplied target into a concrete file
// path. Empty target defaults next to the database file; a directory
// target gets the default name inside it.
func (db *SQLiteDB) resolveBackupTarget(target string, now time.Time) string {
	if target == "" {
		return filepath.Join(filepath.Dir(db.Path), DefaultBackupName(db.Path, now))
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, DefaultBackupName(db.Path, now))
	}
	return target
}

// Backup copies the entire database to target using VACUUM INTO, which
// produces a consistent point-in-time copy even while the file is open.
// The copy is written to a temp name and renamed into place. Returns the
// written path.
func (db *SQLiteDB) Backup(ctx context.Context, target string) (string, error) {
	dest := db.resolveBackupTarget(target, time.Now())

	if err := filestore.EnsureDir(filepath.Dir(dest)); err != nil {
		return "", err
	}

	// VACUUM INTO refuses to overwrite, so write to a fresh temp path
	// first and rename over any existing file.
	tmp := filestore.TempPath(dest)
	if _, err := db.DB.ExecContext(ctx, `VACUUM INTO ?`, tmp); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to back up database: %w", err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move backup into place: %w", err)
	}

	logger.Info().Str("path", dest).Msg("Database backed up")
	return dest, nil
}

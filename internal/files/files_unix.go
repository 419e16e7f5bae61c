//go:build !windows

package files

import (
	"os"
	"path/filepath"

	"github.com/oukeidos/glosst/internal/logger"
)

func replace(staged, path string) error {
	if err := os.Rename(staged, path); err != nil {
		return err
	}
	dir, err := os.Open(filepath.Dir(path))
	if err != nil {
		logger.Warn("Could not open output directory for sync", "path", path, "error", err)
		return nil
	}
	defer dir.Close()
	if err := dir.Sync(); err != nil {
		logger.Warn("Output directory sync failed", "path", path, "error", err)
	}
	return nil
}

// Only Windows has reparse points; symlinks are caught by the mode check.
func isReparsePoint(os.FileInfo) bool { return false }

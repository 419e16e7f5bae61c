package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RejectLinks fails when path or any existing ancestor is a symlink or a
// Windows reparse point. Components that do not exist yet are skipped.
func RejectLinks(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	for p := abs; ; p = filepath.Dir(p) {
		info, err := os.Lstat(p)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return fmt.Errorf("inspect %s: %w", p, err)
		case info.Mode()&os.ModeSymlink != 0:
			return fmt.Errorf("refusing to write %s through symlink %s", abs, p)
		case isReparsePoint(info):
			return fmt.Errorf("refusing to write %s through reparse point %s", abs, p)
		}
		if parent := filepath.Dir(p); parent == p {
			return nil
		}
	}
}

// Package outfile writes converted artifacts so a failed conversion never
// leaves a partial file and never clobbers the previous one.
package outfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// Write stores data at path through a temporary sibling file that is synced
// and then atomically moved over path.
func Write(path string, data []byte, perm os.FileMode, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	// Explicit closes below: Windows cannot rename an open file.
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}

	if err := atomicReplace(tmpPath, path, logger); err != nil {
		os.Remove(tmpPath)
		return err
	}

	logger.Debug("Wrote output", "path", path, "bytes", len(data))
	return nil
}

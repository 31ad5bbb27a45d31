//go:build !windows
// +build !windows

package outfile

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
)

// atomicReplace renames sourcePath over destPath; rename is atomic within a
// directory on POSIX filesystems.
func atomicReplace(sourcePath, destPath string, logger hclog.Logger) error {
	if err := os.Rename(sourcePath, destPath); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	logger.Trace("Replaced file", "dest", destPath)
	return nil
}

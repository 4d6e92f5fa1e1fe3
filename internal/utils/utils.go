// Package utils hosts small helper routines shared across commands.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveOutputDir expands the configured output directory to an absolute
// path, defaulting to the current working directory when empty, and verifies
// it exists and is a directory.
func ResolveOutputDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		return cwd, nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for output directory %q: %w", dir, err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("output directory %q does not exist", absDir)
		}
		return "", fmt.Errorf("cannot access output directory %q: %w", absDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("output path %q is not a directory", absDir)
	}

	return absDir, nil
}

// Package utils provides internal helpers for file backed devices.
//
// The helpers validate user supplied log file paths before a device opens them.
// They are for internal use and not part of the public API.
package utils

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hyp3rd/ewrap"
)

// ErrInvalidPath is returned for log file paths that cannot be used.
var ErrInvalidPath = ewrap.New("invalid log file path")

// CleanLogPath normalizes a log file path and returns it as an absolute path.
//
// The function rejects:
//   - empty paths
//   - relative paths that climb out of the working directory with ".."
//   - paths that resolve to an existing directory
//
// Symlinks are followed when the target exists so that the returned path names
// the file actually written.
func CleanLogPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ewrap.Wrap(ErrInvalidPath, "path cannot be empty")
	}

	cleanPath := filepath.Clean(path)

	if !filepath.IsAbs(cleanPath) && slices.Contains(strings.Split(cleanPath, string(filepath.Separator)), "..") {
		return "", ewrap.Wrap(ErrInvalidPath, "path contains directory traversal sequence").
			WithMetadata("path", path)
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", ewrap.Wrap(err, "resolving absolute path").WithMetadata("path", path)
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		absPath = resolved
	}

	info, err := os.Stat(absPath)
	if err == nil && info.IsDir() {
		return "", ewrap.Wrap(ErrInvalidPath, "path is a directory").WithMetadata("path", path)
	}

	return absPath, nil
}

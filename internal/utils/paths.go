package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
)

// FindFileInSourceDirs locates the source of a coverage file node. An
// existing absolute path wins. Otherwise every source directory is tried
// with the full relative path and then with ever shorter suffixes of it, so
// that "com/acme/Foo.java" is found below "src/main/java" and a path
// recorded on another machine still resolves by its tail.
func FindFileInSourceDirs(fsys filesystem.Filesystem, relativePath string, sourceDirs []string) (string, error) {
	if filepath.IsAbs(relativePath) {
		if _, err := fsys.Stat(relativePath); err == nil {
			return relativePath, nil
		}
	}

	cleaned := filepath.ToSlash(filepath.Clean(relativePath))
	parts := strings.Split(strings.TrimPrefix(cleaned, "/"), "/")
	for _, dir := range sourceDirs {
		dir = filepath.Clean(dir)
		for i := range parts {
			candidate := filepath.Join(dir, filepath.FromSlash(strings.Join(parts[i:], "/")))
			if _, err := fsys.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("file %q not found in any source directory (%v)", relativePath, sourceDirs)
}

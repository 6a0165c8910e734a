package store

import (
	"os"
	"path/filepath"
)

// DefaultDirName is the directory searched for when locating table files.
const DefaultDirName = "data"

// ResolveDataDir locates the data directory for a process running in cwd.
// It checks ../name, ../../name and ./name in that order and returns the
// first that is an existing directory. When none exists it returns ../name
// (./name when cwd has no parent) with found set to false; the writer side
// creates it on first use.
func ResolveDataDir(cwd, name string) (dir string, found bool) {
	if name == "" {
		name = DefaultDirName
	}
	cwd = filepath.Clean(cwd)
	parent := filepath.Dir(cwd)

	var candidates []string
	if parent != cwd {
		candidates = append(candidates, filepath.Join(parent, name))
		if grand := filepath.Dir(parent); grand != parent {
			candidates = append(candidates, filepath.Join(grand, name))
		}
	}
	candidates = append(candidates, filepath.Join(cwd, name))

	for _, c := range candidates {
		if isDir(c) {
			return c, true
		}
	}
	return candidates[0], false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

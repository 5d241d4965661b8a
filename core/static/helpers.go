package static

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// within reports whether the cleaned path p is root or lies under it.
func within(root, p string) bool {
	p = filepath.Clean(p)
	root = filepath.Clean(root)
	return p == root || strings.HasPrefix(p, root+string(filepath.Separator))
}

// requireDir fails when dir is missing or is not a directory. Layouts are
// checked once at startup so a bad root stops the process early.
func requireDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("directory does not exist: %s", dir)
	case err != nil:
		return fmt.Errorf("stat %s: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("not a directory: %s", dir)
	}
	return nil
}

// joinUnder joins a slash-separated relative path onto root. Symlinks are
// resolved inside root, so the result can never point outside of it.
func joinUnder(root, rel string) (string, bool) {
	full, err := securejoin.SecureJoin(root, filepath.FromSlash(rel))
	if err != nil || !within(root, full) {
		return "", false
	}
	return full, true
}

// isRegularFile reports whether p exists and is a regular file. Any stat
// error counts as "no".
func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

package preview

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kinetic-motion/director/direrr"
)

// AllowedRoots returns the file API's allowed root directories: the
// process working directory plus any semicolon-separated paths named by
// DIRECTOR_VIEW_ALLOWED_ROOTS (spec §6).
func AllowedRoots(cwd string) []string {
	roots := []string{cwd}
	if extra := os.Getenv("DIRECTOR_VIEW_ALLOWED_ROOTS"); extra != "" {
		for _, p := range strings.Split(extra, ";") {
			p = strings.TrimSpace(p)
			if p != "" {
				roots = append(roots, p)
			}
		}
	}
	return roots
}

// ResolvePath canonicalizes path (resolving symlinks and ".."), and
// refuses it with a direrr.PathEscapeError unless the result falls under
// one of cwd's allowed roots (spec §6's file API, spec §7's "Path escape"
// error kind).
func ResolvePath(cwd, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		// The target may not exist yet (a write); fall back to Clean on
		// the unresolved parent directory instead of refusing outright.
		dir, err2 := filepath.EvalSymlinks(filepath.Dir(path))
		if err2 != nil {
			return "", direrr.NewScript("resolve path", err)
		}
		resolved = filepath.Join(dir, filepath.Base(path))
	}

	for _, root := range AllowedRoots(cwd) {
		rootResolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			rootResolved = filepath.Clean(root)
		}
		if resolved == rootResolved || strings.HasPrefix(resolved, rootResolved+string(filepath.Separator)) {
			return resolved, nil
		}
	}
	return "", &direrr.PathEscapeError{Path: path}
}

// ReadFile reads a text file within the allowed roots.
func ReadFile(cwd, path string) ([]byte, error) {
	resolved, err := ResolvePath(cwd, path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &direrr.AssetError{Path: path, Err: err}
	}
	return data, nil
}

// WriteFile writes a text file within the allowed roots.
func WriteFile(cwd, path string, content []byte) error {
	resolved, err := ResolvePath(cwd, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(resolved, content, 0o644); err != nil {
		return &direrr.AssetError{Path: path, Err: err}
	}
	return nil
}

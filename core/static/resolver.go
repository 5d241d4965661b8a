package static

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolver looks documents up in a RootSet. It holds no state between calls,
// so a file created between two lookups is visible to the second one.
type Resolver struct {
	roots []string
	ext   string
}

// NewResolver creates a resolver over the layout's RootSet.
func NewResolver(l Layout) *Resolver {
	ext := l.DocumentExt
	if ext == "" {
		ext = DefaultDocumentExt
	}
	return &Resolver{roots: l.Roots, ext: ext}
}

// FindCandidate maps a logical path such as "/section/page" to
// "section/page.html" and returns the first root holding it as a regular
// file. Subdirectories are not searched.
func (r *Resolver) FindCandidate(logical string) (string, bool) {
	rel := strings.TrimPrefix(path.Clean("/"+logical), "/")
	if rel == "" {
		return "", false
	}
	return r.FindIn(r.roots, rel+r.ext)
}

// FindIn returns the first regular file named rel across roots, in order.
func (r *Resolver) FindIn(roots []string, rel string) (string, bool) {
	rel = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(rel)), "/")
	if rel == "" {
		return "", false
	}
	for _, root := range roots {
		full, ok := joinUnder(root, rel)
		if !ok {
			continue
		}
		if isRegularFile(full) {
			return full, true
		}
	}
	return "", false
}

// FindFirstByExt walks every root depth first and returns the first regular
// file whose extension matches ext, ignoring case. Entries are visited in
// os.ReadDir order. Symlinks are not followed and unreadable directories
// are skipped.
func (r *Resolver) FindFirstByExt(roots []string, ext string) (string, bool) {
	for _, root := range roots {
		if found, ok := firstByExt(root, ext); ok {
			return found, true
		}
	}
	return "", false
}

// frame is one directory being walked: its path and the entries not yet
// visited.
type frame struct {
	dir     string
	entries []os.DirEntry
}

func firstByExt(root, ext string) (string, bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}

	stack := []*frame{{dir: root, entries: entries}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if len(top.entries) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[0]
		top.entries = top.entries[1:]
		full := filepath.Join(top.dir, entry.Name())

		switch mode := entry.Type(); {
		case mode&os.ModeSymlink != 0:
			continue
		case mode.IsDir():
			children, err := os.ReadDir(full)
			if err != nil {
				continue
			}
			stack = append(stack, &frame{dir: full, entries: children})
		case mode.IsRegular():
			if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
				return full, true
			}
		}
	}
	return "", false
}

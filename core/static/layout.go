package static

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Layout errors. All of them are configuration errors and are meant to stop
// the process at startup.
var (
	ErrEmptyRootSet        = errors.New("static: root set is empty")
	ErrRootNotAbsolute     = errors.New("static: root is not an absolute path")
	ErrRootNotDirectory    = errors.New("static: root is not a directory")
	ErrInvalidPrefix       = errors.New("static: invalid url prefix")
	ErrInvalidDocumentExt  = errors.New("static: invalid document extension")
	ErrInvalidDocumentName = errors.New("static: invalid default document name")
)

// Defaults used by NewLayout when the corresponding field is left empty.
const (
	DefaultAPIPrefix    = "/api"
	DefaultLegacyPrefix = "/public"
	DefaultDocumentExt  = ".html"
)

// ProtectedNamespace is a URL prefix that is never reachable by direct
// request. Its reserved document (Index) is only ever served for "/".
type ProtectedNamespace struct {
	Prefix string `yaml:"prefix"`
	Index  string `yaml:"index"`
}

// Contains reports whether the cleaned URL path is the prefix itself or is
// nested under it.
func (p ProtectedNamespace) Contains(urlPath string) bool {
	return hasPathPrefix(urlPath, p.Prefix)
}

// Layout describes where documents live and how URLs map onto them.
// It is built once at startup and treated as read-only afterwards.
type Layout struct {
	// Roots is the ordered RootSet. The first root holding a match wins.
	Roots []string `yaml:"roots"`
	// AssetRoots are served by the generic static handler. Roots are used
	// when empty.
	AssetRoots []string `yaml:"asset_roots"`
	// Protected is the hidden namespace. An empty prefix disables it.
	Protected ProtectedNamespace `yaml:"protected"`
	// DefaultDocuments are tried, in order, for the site root.
	DefaultDocuments []string `yaml:"default_documents"`
	APIPrefix        string   `yaml:"api_prefix"`
	LegacyPrefix     string   `yaml:"legacy_prefix"`
	DocumentExt      string   `yaml:"document_ext"`
}

// NewLayout fills defaults, converts every directory to an absolute path
// and validates the result.
func NewLayout(l Layout) (Layout, error) {
	if l.APIPrefix == "" {
		l.APIPrefix = DefaultAPIPrefix
	}
	if l.LegacyPrefix == "" {
		l.LegacyPrefix = DefaultLegacyPrefix
	}
	if l.DocumentExt == "" {
		l.DocumentExt = DefaultDocumentExt
	}
	if len(l.AssetRoots) == 0 {
		l.AssetRoots = l.Roots
	}

	var err error
	if l.Roots, err = absPaths(l.Roots); err != nil {
		return Layout{}, err
	}
	if l.AssetRoots, err = absPaths(l.AssetRoots); err != nil {
		return Layout{}, err
	}
	if l.Protected.Index != "" {
		if l.Protected.Index, err = filepath.Abs(l.Protected.Index); err != nil {
			return Layout{}, fmt.Errorf("static: protected index: %w", err)
		}
	}

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// MustLayout is like NewLayout but panics on error.
func MustLayout(l Layout) Layout {
	l, err := NewLayout(l)
	if err != nil {
		panic(err)
	}
	return l
}

// Validate checks the startup invariants: a non-empty RootSet of existing
// absolute directories and well-formed prefixes.
func (l Layout) Validate() error {
	if len(l.Roots) == 0 {
		return ErrEmptyRootSet
	}
	for _, roots := range [][]string{l.Roots, l.AssetRoots} {
		for _, root := range roots {
			if !filepath.IsAbs(root) {
				return fmt.Errorf("%w: %s", ErrRootNotAbsolute, root)
			}
			if err := requireDir(root); err != nil {
				return fmt.Errorf("%w: %w", ErrRootNotDirectory, err)
			}
		}
	}

	for _, prefix := range []string{l.APIPrefix, l.LegacyPrefix} {
		if !validPrefix(prefix) {
			return fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
		}
	}
	if l.Protected.Prefix != "" && !validPrefix(l.Protected.Prefix) {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, l.Protected.Prefix)
	}

	if !strings.HasPrefix(l.DocumentExt, ".") || len(l.DocumentExt) < 2 || strings.ContainsAny(l.DocumentExt, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidDocumentExt, l.DocumentExt)
	}

	for _, name := range l.DefaultDocuments {
		if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidDocumentName, name)
		}
	}

	return nil
}

// assetRoots returns the roots used by the generic static handler.
func (l Layout) assetRoots() []string {
	if len(l.AssetRoots) > 0 {
		return l.AssetRoots
	}
	return l.Roots
}

func absPaths(dirs []string) ([]string, error) {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, fmt.Errorf("static: resolve %q: %w", d, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

// validPrefix accepts clean absolute URL paths other than "/".
func validPrefix(p string) bool {
	return p != "" && p != "/" && strings.HasPrefix(p, "/") && path.Clean(p) == p
}

// hasPathPrefix matches whole path segments: "/public" matches "/public"
// and "/public/x" but not "/publications".
func hasPathPrefix(urlPath, prefix string) bool {
	if prefix == "" {
		return false
	}
	return urlPath == prefix || strings.HasPrefix(urlPath, prefix+"/")
}

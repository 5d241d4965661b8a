package static

import (
	"path"
	"strings"
)

// Kind classifies a request path.
type Kind int

const (
	// KindInvalid marks paths rejected before any filesystem access.
	KindInvalid Kind = iota
	// KindAPI marks paths under the API prefix. They are never resolved here.
	KindAPI
	// KindHasExtension marks paths whose last segment carries an extension.
	KindHasExtension
	// KindExtensionless marks everything else, including "/".
	KindExtensionless
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindHasExtension:
		return "has_extension"
	case KindExtensionless:
		return "extensionless"
	default:
		return "invalid"
	}
}

// PathInfo is the result of Classify.
type PathInfo struct {
	Kind Kind
	// Clean is the hardened path: rooted, no "..", no duplicate slashes.
	Clean string
	// Ext is the extension of the last segment, with the leading dot.
	Ext string
}

// Classify hardens and classifies a raw request path. It never touches the
// filesystem.
func Classify(l Layout, rawPath string) PathInfo {
	if strings.ContainsAny(rawPath, "\x00\\") {
		return PathInfo{Kind: KindInvalid}
	}

	clean := cleanPath(rawPath)
	apiPrefix := l.APIPrefix
	if apiPrefix == "" {
		apiPrefix = DefaultAPIPrefix
	}

	switch {
	case hasPathPrefix(clean, apiPrefix):
		return PathInfo{Kind: KindAPI, Clean: clean}
	case extOf(clean) != "":
		return PathInfo{Kind: KindHasExtension, Clean: clean, Ext: extOf(clean)}
	default:
		return PathInfo{Kind: KindExtensionless, Clean: clean}
	}
}

// cleanPath roots p and removes dot segments, so "/../../etc/passwd"
// becomes "/etc/passwd".
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}

// extOf returns the extension of the last segment. Dot files such as
// "/.well-known" have none.
func extOf(p string) string {
	base := path.Base(p)
	ext := path.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

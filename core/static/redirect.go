package static

import "strings"

// Rule identifies which redirect rule fired.
type Rule int

const (
	// RuleNone means no redirect applies.
	RuleNone Rule = iota
	// RuleProtected sends anything under the protected namespace to "/".
	RuleProtected
	// RuleLegacyPrefix strips the deprecated public prefix.
	RuleLegacyPrefix
	// RuleDocumentSuffix strips an explicit document extension.
	RuleDocumentSuffix
)

// String implements fmt.Stringer.
func (r Rule) String() string {
	switch r {
	case RuleProtected:
		return "protected"
	case RuleLegacyPrefix:
		return "legacy_prefix"
	case RuleDocumentSuffix:
		return "document_suffix"
	default:
		return "none"
	}
}

// RedirectPolicy decides whether a path must be permanently redirected.
// Rules are evaluated in a fixed order and the first match wins.
type RedirectPolicy struct {
	Protected    string
	LegacyPrefix string
	DocumentExt  string
}

// NewRedirectPolicy builds the policy for a layout.
func NewRedirectPolicy(l Layout) RedirectPolicy {
	ext := l.DocumentExt
	if ext == "" {
		ext = DefaultDocumentExt
	}
	return RedirectPolicy{
		Protected:    l.Protected.Prefix,
		LegacyPrefix: l.LegacyPrefix,
		DocumentExt:  ext,
	}
}

// Check evaluates the rules against a cleaned path. rawQuery is reattached
// verbatim for the legacy and suffix rules; the protected rule always lands
// on a bare "/".
func (p RedirectPolicy) Check(cleanPath, rawQuery string) (string, Rule, bool) {
	if hasPathPrefix(cleanPath, p.Protected) {
		return "/", RuleProtected, true
	}

	if hasPathPrefix(cleanPath, p.LegacyPrefix) {
		target := strings.TrimPrefix(cleanPath, p.LegacyPrefix)
		return withQuery(orRoot(target), rawQuery), RuleLegacyPrefix, true
	}

	if p.DocumentExt != "" && strings.HasSuffix(cleanPath, p.DocumentExt) {
		target := cleanPath
		for strings.HasSuffix(target, p.DocumentExt) {
			target = strings.TrimSuffix(target, p.DocumentExt)
		}
		return withQuery(orRoot(target), rawQuery), RuleDocumentSuffix, true
	}

	return "", RuleNone, false
}

// withQuery appends the raw query string, if any, after a "?" separator.
// The query is kept as is, including a leading "?" of its own.
func withQuery(target, rawQuery string) string {
	if rawQuery == "" {
		return target
	}
	return target + "?" + rawQuery
}

// orRoot maps an empty or slash-only target to "/".
func orRoot(target string) string {
	if target == "" || target == "/" {
		return "/"
	}
	return target
}

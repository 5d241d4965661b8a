package static

import (
	"fmt"
	"strings"
)

// Request is the part of an HTTP request the pipeline looks at.
type Request struct {
	Path     string
	RawQuery string
}

// Resolution is the outcome of resolving one Request. It is one of
// Redirect, ServeFile, Diagnostic, Static, Passthrough or NotFound.
type Resolution interface {
	resolution()
}

// Redirect is a permanent redirect to Target.
type Redirect struct {
	Target string
	Rule   Rule
}

// ServeFile serves the file at the absolute Path.
type ServeFile struct {
	Path string
}

// Diagnostic answers 200 with a plain text message. Used when the site root
// has nothing to show.
type Diagnostic struct {
	Text string
}

// Static defers to the generic static handler with the cleaned Path.
type Static struct {
	Path string
}

// Passthrough hands the request to the API handler untouched.
type Passthrough struct{}

// NotFound answers 404.
type NotFound struct{}

func (Redirect) resolution()    {}
func (ServeFile) resolution()   {}
func (Diagnostic) resolution()  {}
func (Static) resolution()      {}
func (Passthrough) resolution() {}
func (NotFound) resolution()    {}

// Pipeline resolves request paths against a Layout.
type Pipeline struct {
	layout   Layout
	policy   RedirectPolicy
	resolver *Resolver
}

// NewPipeline creates a pipeline for a validated layout.
func NewPipeline(l Layout) *Pipeline {
	return &Pipeline{
		layout:   l,
		policy:   NewRedirectPolicy(l),
		resolver: NewResolver(l),
	}
}

// Layout returns the layout the pipeline was built with.
func (p *Pipeline) Layout() Layout { return p.layout }

// Resolve decides what to do with a request. It reads the filesystem but
// never writes to it and keeps nothing between calls.
func (p *Pipeline) Resolve(req Request) Resolution {
	info := Classify(p.layout, req.Path)

	switch info.Kind {
	case KindInvalid:
		return NotFound{}
	case KindAPI:
		return Passthrough{}
	}

	if target, rule, ok := p.checkRedirect(info, req.RawQuery); ok {
		return Redirect{Target: target, Rule: rule}
	}

	if info.Kind == KindHasExtension {
		return Static{Path: info.Clean}
	}

	if info.Clean == "/" {
		return p.resolveRoot()
	}

	if file, ok := p.resolver.FindCandidate(info.Clean); ok {
		return ServeFile{Path: file}
	}
	return Static{Path: info.Clean}
}

// checkRedirect applies the protected and legacy rules to every path and
// the suffix rule only to paths carrying the document extension.
func (p *Pipeline) checkRedirect(info PathInfo, rawQuery string) (string, Rule, bool) {
	policy := p.policy
	if info.Kind == KindHasExtension && info.Ext != policy.DocumentExt {
		policy.DocumentExt = ""
	}
	return policy.Check(info.Clean, rawQuery)
}

func (p *Pipeline) resolveRoot() Resolution {
	if idx := p.layout.Protected.Index; idx != "" && isRegularFile(idx) {
		return ServeFile{Path: idx}
	}

	for _, name := range p.layout.DefaultDocuments {
		if file, ok := p.resolver.FindIn(p.layout.Roots, name); ok {
			return ServeFile{Path: file}
		}
	}

	if file, ok := p.resolver.FindFirstByExt(p.layout.Roots, p.resolver.ext); ok {
		return ServeFile{Path: file}
	}

	return Diagnostic{Text: diagnosticText(p.layout)}
}

func diagnosticText(l Layout) string {
	if len(l.DefaultDocuments) == 0 {
		return fmt.Sprintf("No default %s document found in the configured roots.", docKind(l.DocumentExt))
	}
	return fmt.Sprintf("No default %s document found in the configured roots (add %s).",
		docKind(l.DocumentExt), strings.Join(l.DefaultDocuments, " or "))
}

func docKind(ext string) string {
	if ext == "" {
		ext = DefaultDocumentExt
	}
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}

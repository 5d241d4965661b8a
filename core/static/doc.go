// Package static resolves page URLs of the catalog site to documents on disk.
//
// A request path goes through a fixed pipeline:
//
//	Classify → RedirectPolicy → Resolver → Resolution
//
// Classify hardens the raw path (no NUL, no backslash, dot segments removed)
// and sorts it into API, extensioned or extensionless. API paths are never
// touched. Everything else is checked against the redirect rules, which are
// evaluated in order with the first match winning:
//
//   - anything under the protected prefix redirects to "/"
//   - the legacy "/public" prefix is stripped
//   - an explicit ".html" suffix is stripped
//
// Extensionless paths are then looked up as "<path>.html" across the ordered
// roots, first root wins. The site root has its own branch: the protected
// index, then each default document, then the first ".html" file found by a
// depth-first walk, and finally a plain text diagnostic.
//
// Basic usage:
//
//	layout, err := static.NewLayout(static.Layout{
//		Roots:            []string{".", "./public"},
//		AssetRoots:       []string{"./public"},
//		Protected:        static.ProtectedNamespace{Prefix: "/_hidden", Index: "./public/_hidden/index.html"},
//		DefaultDocuments: []string{"filmy.html", "index.html"},
//	})
//	if err != nil {
//		return err
//	}
//
//	site := static.NewSite(static.NewPipeline(layout),
//		static.WithPassthrough(apiRouter),
//		static.WithLogger(log),
//	)
//	r.Handle("/*", site)
//
// Nothing is cached. Every resolution reads the filesystem again, so files
// added while the server runs are picked up by the next request. Filesystem
// errors count as "not found" for that candidate.
package static

package static_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streaminghub/catalog/core/static"
)

// writeFile creates dir/rel with the given content, making parent
// directories as needed.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	return full
}

// siteFixture is a two root layout shaped like the production one: a
// project root and a public directory holding the protected namespace.
type siteFixture struct {
	project string
	public  string
	layout  static.Layout
}

func newSiteFixture(t *testing.T) siteFixture {
	t.Helper()
	project := t.TempDir()
	public := filepath.Join(project, "public")
	require.NoError(t, os.MkdirAll(public, 0o755))

	layout, err := static.NewLayout(static.Layout{
		Roots:      []string{project, public},
		AssetRoots: []string{public},
		Protected: static.ProtectedNamespace{
			Prefix: "/_hidden",
			Index:  filepath.Join(public, "_hidden", "index.html"),
		},
		DefaultDocuments: []string{"filmy.html", "index.html"},
	})
	require.NoError(t, err)

	return siteFixture{project: project, public: public, layout: layout}
}

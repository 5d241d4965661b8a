package main

import (
	"github.com/streaminghub/catalog/core/config"
	"github.com/streaminghub/catalog/core/static"
)

type appConfig struct {
	Name string `env:"APP_NAME" envDefault:"catalog"`
	Env  string `env:"APP_ENV" envDefault:"development"`
	// Empty keeps the level of the environment preset.
	LogLevel       string   `env:"LOG_LEVEL"`
	DBDriver       string   `env:"DB_DRIVER" envDefault:"sqlite"`
	CORSOrigins    []string `env:"CORS_ORIGIN" envDefault:"*" envSeparator:","`
	MetricsEnabled bool     `env:"METRICS_ENABLED" envDefault:"true"`
}

func (c appConfig) development() bool {
	return c.Env == "" || c.Env == "development"
}

type siteConfig struct {
	Roots            []string `env:"SITE_ROOTS" envDefault:".,./public" envSeparator:","`
	AssetRoots       []string `env:"SITE_ASSET_ROOTS" envDefault:"./public" envSeparator:","`
	ProtectedPrefix  string   `env:"SITE_PROTECTED_PREFIX" envDefault:"/_hidden"`
	ProtectedIndex   string   `env:"SITE_PROTECTED_INDEX" envDefault:"./public/_hidden/index.html"`
	DefaultDocuments []string `env:"SITE_DEFAULT_DOCUMENTS" envDefault:"filmy.html,index.html" envSeparator:","`
	APIPrefix        string   `env:"SITE_API_PREFIX" envDefault:"/api"`
	LegacyPrefix     string   `env:"SITE_LEGACY_PREFIX" envDefault:"/public"`
	DocumentExt      string   `env:"SITE_DOCUMENT_EXT" envDefault:".html"`
	// LayoutFile is an optional YAML file. Keys present in it override the
	// SITE_* values.
	LayoutFile string `env:"SITE_LAYOUT_FILE"`
}

// layout builds and validates the site layout. Errors are fatal at startup.
func (c siteConfig) layout() (static.Layout, error) {
	l := static.Layout{
		Roots:      c.Roots,
		AssetRoots: c.AssetRoots,
		Protected: static.ProtectedNamespace{
			Prefix: c.ProtectedPrefix,
			Index:  c.ProtectedIndex,
		},
		DefaultDocuments: c.DefaultDocuments,
		APIPrefix:        c.APIPrefix,
		LegacyPrefix:     c.LegacyPrefix,
		DocumentExt:      c.DocumentExt,
	}
	if c.LayoutFile != "" {
		if err := config.LoadYAML(c.LayoutFile, &l); err != nil {
			return static.Layout{}, err
		}
	}
	return static.NewLayout(l)
}

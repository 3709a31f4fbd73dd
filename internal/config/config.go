// Package config holds the build options of the site generator.
package config

// Config selects where content is read from and where the site is written.
type Config struct {
	OutputDir string `mapstructure:"outputDir"`
	DocsDir   string `mapstructure:"docsDir"`
	StaticDir string `mapstructure:"staticDir"`
	SiteFile  string `mapstructure:"siteFile"`
	Port      int    `mapstructure:"port"`
	Verbose   bool   `mapstructure:"verbose"`
}

// Defaults used when neither a config file, the environment nor a flag
// sets a value.
var Defaults = map[string]any{
	"outputDir": "build",
	"docsDir":   "docs",
	"staticDir": "static",
	"siteFile":  "site.yaml",
	"port":      3000,
	"verbose":   false,
}

// Package site holds the site configuration record: metadata, navigation,
// footer links and theme options for the documentation website.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// Config is the top-level site configuration. It is built once before a
// build starts and is only read afterwards.
type Config struct {
	Title                 string      `yaml:"title" validate:"required"`
	Tagline               string      `yaml:"tagline"`
	URL                   string      `yaml:"url" validate:"required,url"`
	BaseURL               string      `yaml:"baseUrl" validate:"required,startswith=/,endswith=/"`
	OnBrokenLinks         Policy      `yaml:"onBrokenLinks" validate:"oneof=ignore log warn throw"`
	OnBrokenMarkdownLinks Policy      `yaml:"onBrokenMarkdownLinks" validate:"oneof=ignore log warn throw"`
	Favicon               string      `yaml:"favicon"`
	OrganizationName      string      `yaml:"organizationName"`
	ProjectName           string      `yaml:"projectName"`
	I18n                  I18n        `yaml:"i18n"`
	Presets               Presets     `yaml:"presets"`
	ThemeConfig           ThemeConfig `yaml:"themeConfig"`
	Scripts               []Script    `yaml:"scripts" validate:"dive"`
}

type I18n struct {
	DefaultLocale string   `yaml:"defaultLocale" validate:"required"`
	Locales       []string `yaml:"locales" validate:"required,min=1"`
}

type Presets struct {
	Classic Classic `yaml:"classic"`
}

// Classic mirrors the options of the classic preset: analytics, docs and theme.
type Classic struct {
	GoogleAnalytics GoogleAnalytics `yaml:"googleAnalytics"`
	Docs            DocsOptions     `yaml:"docs"`
	Theme           ThemeOptions    `yaml:"theme"`
}

type GoogleAnalytics struct {
	TrackingID  string `yaml:"trackingID"`
	AnonymizeIP bool   `yaml:"anonymizeIP"`
}

type DocsOptions struct {
	RouteBasePath string `yaml:"routeBasePath" validate:"required"`
	EditURL       string `yaml:"editUrl" validate:"omitempty,url"`
}

type ThemeOptions struct {
	CustomCSS string `yaml:"customCss"`
}

type ThemeConfig struct {
	Image     string    `yaml:"image"`
	Metadata  []Meta    `yaml:"metadata" validate:"dive"`
	Navbar    Navbar    `yaml:"navbar"`
	Footer    Footer    `yaml:"footer"`
	Prism     Prism     `yaml:"prism"`
	ColorMode ColorMode `yaml:"colorMode"`
	Hero      Hero      `yaml:"hero"`
}

type Meta struct {
	Name    string `yaml:"name" validate:"required"`
	Content string `yaml:"content"`
}

type Navbar struct {
	Title string    `yaml:"title"`
	Logo  Logo      `yaml:"logo"`
	Items []NavItem `yaml:"items" validate:"dive"`
}

type Logo struct {
	Alt string `yaml:"alt"`
	Src string `yaml:"src"`
}

// NavItem is a navbar entry. Items of type "doc" point at a document id and
// are resolved to the document's permalink at build time.
type NavItem struct {
	Type     string `yaml:"type,omitempty" validate:"omitempty,oneof=doc link"`
	DocID    string `yaml:"docId,omitempty" validate:"required_if=Type doc"`
	To       string `yaml:"to,omitempty"`
	Href     string `yaml:"href,omitempty"`
	Label    string `yaml:"label" validate:"required"`
	Position string `yaml:"position,omitempty" validate:"omitempty,oneof=left right"`
}

type Footer struct {
	Style     string        `yaml:"style" validate:"omitempty,oneof=dark light"`
	Links     []FooterGroup `yaml:"links" validate:"dive"`
	Copyright string        `yaml:"copyright"`
}

type FooterGroup struct {
	Title string `yaml:"title"`
	Items []Link `yaml:"items" validate:"dive"`
}

// Link is either internal (To) or external (Href).
type Link struct {
	Label string `yaml:"label" validate:"required"`
	To    string `yaml:"to,omitempty"`
	Href  string `yaml:"href,omitempty"`
}

// Target returns the link destination, preferring Href.
func (l Link) Target() string {
	if l.Href != "" {
		return l.Href
	}
	return l.To
}

// Prism names the code highlighting style.
type Prism struct {
	Theme string `yaml:"theme"`
}

type ColorMode struct {
	DefaultMode               string `yaml:"defaultMode" validate:"oneof=light dark"`
	DisableSwitch             bool   `yaml:"disableSwitch"`
	RespectPrefersColorScheme bool   `yaml:"respectPrefersColorScheme"`
}

// Hero is the homepage banner content below the title and tagline.
type Hero struct {
	Subtitles      []string `yaml:"subtitles"`
	ProjectLink    Link     `yaml:"projectLink"`
	GetStartedLink Link     `yaml:"getStartedLink"`
}

type Script struct {
	Src   string `yaml:"src" validate:"required"`
	Async bool   `yaml:"async,omitempty"`
	Defer bool   `yaml:"defer,omitempty"`
}

// Load returns the default configuration overlaid with the YAML file at
// path. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading site file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling site file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks required fields and enumerations.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ValidationError{Message: "invalid site configuration", Cause: err}
	}

	found := false
	for _, l := range c.I18n.Locales {
		if l == c.I18n.DefaultLocale {
			found = true
			break
		}
	}
	if !found {
		return &ValidationError{
			Message: fmt.Sprintf("default locale %q is not listed in locales", c.I18n.DefaultLocale),
		}
	}
	return nil
}

// URLFor prefixes an internal path with the base URL. External URLs are
// returned unchanged.
func (c *Config) URLFor(p string) string {
	if IsExternal(p) {
		return p
	}
	return c.BaseURL + strings.TrimPrefix(p, "/")
}

// AbsoluteURL returns the fully qualified URL of an internal path.
func (c *Config) AbsoluteURL(p string) string {
	if IsExternal(p) {
		return p
	}
	return strings.TrimSuffix(c.URL, "/") + c.URLFor(p)
}

// Copyright returns the footer copyright line for the given build time.
func (c *Config) Copyright(now time.Time) string {
	return strings.ReplaceAll(c.ThemeConfig.Footer.Copyright, "{year}", strconv.Itoa(now.Year()))
}

// DocsRoute returns the route prefix of the docs section, e.g. "/docs".
func (c *Config) DocsRoute() string {
	return "/" + strings.Trim(c.Presets.Classic.Docs.RouteBasePath, "/")
}

// IsExternal reports whether p carries a scheme or is protocol-relative.
func IsExternal(p string) bool {
	if strings.HasPrefix(p, "//") {
		return true
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme != ""
}

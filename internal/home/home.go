// Package home renders the homepage: the hero header and the feature grid.
package home

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"

	"github.com/monster-js/documentation/internal/site"
)

// Description is the meta description of the homepage.
const Description = "MonsterJS is a JavaScript framework for building web applications or stand-alone components. It is based on web components suitable for encapsulating components and building micro frontend apps."

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var sanitizer = bluemonday.UGCPolicy()

// Feature is one card of the homepage feature grid.
type Feature struct {
	Title       string
	ImageURL    string
	Description template.HTML
}

// NewFeature builds a Feature, sanitizing the description fragment.
func NewFeature(title, imageURL, description string) Feature {
	return Feature{
		Title:       title,
		ImageURL:    imageURL,
		Description: template.HTML(sanitizer.Sanitize(description)),
	}
}

// Features returns the homepage features in column order.
func Features() []Feature {
	return []Feature{
		NewFeature(
			"Easy to Use",
			"/img/monster-1-128.png",
			"This framework is built to be simple, easy to understand, and easy to use.",
		),
		NewFeature(
			"Component-Based",
			"/img/monster-2-128.png",
			"Build small components that manage their own states as building blocks to build larger applications.",
		),
		NewFeature(
			"Web Components",
			"/img/monster-3-128.png",
			"It is based on web components suitable for building loosely coupled components.",
		),
	}
}

// Block is a Feature placed in the grid.
type Block struct {
	Feature
	Index    int
	ImageSrc string
}

type link struct {
	Label string
	Href  string
}

type headerView struct {
	Title      string
	Tagline    string
	Subtitles  []string
	Project    link
	GetStarted link
}

// View is the rendered homepage body plus its layout metadata.
type View struct {
	Title       string
	Description string
	Content     template.HTML
}

// Renderer renders the homepage units for one site configuration.
type Renderer struct {
	cfg *site.Config
}

func NewRenderer(cfg *site.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Blocks maps features to grid blocks, keeping their order.
func (r *Renderer) Blocks(features []Feature) []Block {
	blocks := make([]Block, len(features))
	for i, f := range features {
		blocks[i] = Block{
			Feature:  f,
			Index:    i,
			ImageSrc: r.cfg.URLFor(f.ImageURL),
		}
	}
	return blocks
}

// Features writes the feature grid.
func (r *Renderer) Features(w io.Writer, features []Feature) error {
	return templates.ExecuteTemplate(w, "features", r.Blocks(features))
}

// Header writes the hero banner.
func (r *Renderer) Header(w io.Writer) error {
	hero := r.cfg.ThemeConfig.Hero
	return templates.ExecuteTemplate(w, "header", headerView{
		Title:     r.cfg.Title,
		Tagline:   r.cfg.Tagline,
		Subtitles: hero.Subtitles,
		Project: link{
			Label: hero.ProjectLink.Label,
			Href:  r.cfg.URLFor(hero.ProjectLink.Target()),
		},
		GetStarted: link{
			Label: hero.GetStartedLink.Label,
			Href:  r.cfg.URLFor(hero.GetStartedLink.Target()),
		},
	})
}

// Page composes the header and the feature grid into the homepage body.
func (r *Renderer) Page(features []Feature) (*View, error) {
	var buf bytes.Buffer
	if err := r.Header(&buf); err != nil {
		return nil, fmt.Errorf("failed to render homepage header: %w", err)
	}
	buf.WriteString("\n<main>\n")
	if err := r.Features(&buf, features); err != nil {
		return nil, fmt.Errorf("failed to render homepage features: %w", err)
	}
	buf.WriteString("\n</main>\n")

	return &View{
		Title:       "Hello from " + r.cfg.Title,
		Description: Description,
		Content:     template.HTML(buf.String()),
	}, nil
}

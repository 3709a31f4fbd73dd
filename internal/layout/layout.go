// Package layout renders pages into the site's HTML layouts.
package layout

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/monster-js/documentation/internal/model"
	"github.com/monster-js/documentation/internal/site"
)

// Page layouts. Each one defines the "main" block of the base layout.
const (
	Home     = "home.html"
	Doc      = "doc.html"
	Category = "category.html"
	NotFound = "404.html"
)

//go:embed templates
var templateFS embed.FS

// Layouts holds one template set per page layout.
type Layouts struct {
	pages map[string]*template.Template
}

// New parses the base layout with its partials and clones it for every
// page layout.
func New(cfg *site.Config) (*Layouts, error) {
	funcs := template.FuncMap{
		"relURL": cfg.URLFor,
		"absURL": cfg.AbsoluteURL,
	}

	base, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base layout and partials: %w", err)
	}

	l := &Layouts{pages: make(map[string]*template.Template)}
	for _, name := range []string{Home, Doc, Category, NotFound} {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("failed to parse layout %s: %w", name, err)
		}
		l.pages[name] = t
	}
	return l, nil
}

// Render executes the named page layout.
func (l *Layouts) Render(w io.Writer, name string, data *model.PageData) error {
	t, ok := l.pages[name]
	if !ok {
		return fmt.Errorf("layout '%s' not found", name)
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("failed to execute layout '%s': %w", name, err)
	}
	return nil
}

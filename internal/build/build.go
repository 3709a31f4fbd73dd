// Package build generates the static site: homepage, docs, category
// indexes, stylesheets and sitemap, followed by the broken link check.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/monster-js/documentation/internal/config"
	"github.com/monster-js/documentation/internal/docs"
	"github.com/monster-js/documentation/internal/home"
	"github.com/monster-js/documentation/internal/layout"
	"github.com/monster-js/documentation/internal/links"
	"github.com/monster-js/documentation/internal/model"
	"github.com/monster-js/documentation/internal/site"
)

const (
	highlightCSS = "/assets/css/highlight.css"
	customCSS    = "/assets/css/custom.css"
	notFoundPage = "/404.html"
	sitemapFile  = "sitemap.xml"
)

// Result summarizes a finished build.
type Result struct {
	Routes      []string
	Docs        int
	Categories  int
	BrokenLinks []links.BrokenLink
}

// PageError reports a page that could not be written.
type PageError struct {
	Route string
	Cause error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %s: %v", e.Route, e.Cause)
}

func (e *PageError) Unwrap() error {
	return e.Cause
}

// Run builds the site described by cfg from the directories in opts.
func Run(ctx context.Context, opts config.Config, cfg *site.Config, logger *slog.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Info("Starting build", "outputDir", opts.OutputDir, "baseUrl", cfg.BaseURL, "title", cfg.Title)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := prepareOutput(opts.OutputDir); err != nil {
		return nil, err
	}

	if _, err := os.Stat(opts.StaticDir); err == nil {
		logger.Debug("Copying static assets", "from", opts.StaticDir, "to", opts.OutputDir)
		if err := copyDirContents(opts.StaticDir, opts.OutputDir, logger); err != nil {
			return nil, fmt.Errorf("failed to copy static assets: %w", err)
		}
	} else {
		logger.Info("Static assets directory not found, skipping copy", "dir", opts.StaticDir)
	}

	stylesheets, err := writeStylesheets(opts.OutputDir, cfg, logger)
	if err != nil {
		return nil, err
	}

	set, err := docs.Load(ctx, cfg, opts.DocsDir, logger)
	if err != nil {
		return nil, err
	}
	if err := links.Report(logger, cfg.OnBrokenMarkdownLinks, "markdown links", set.BrokenLinks); err != nil {
		return nil, err
	}

	navbar, err := resolveNavbar(cfg, set)
	if err != nil {
		return nil, err
	}

	siteData := &model.SiteData{
		Config:      cfg,
		Docs:        set.Docs,
		DocsByID:    set.ByID,
		Categories:  set.Categories,
		Navbar:      navbar,
		Footer:      resolveFooter(cfg),
		Copyright:   cfg.Copyright(time.Now()),
		Stylesheets: stylesheets,
	}

	layouts, err := layout.New(cfg)
	if err != nil {
		return nil, err
	}

	w := &pageWriter{outputDir: opts.OutputDir, layouts: layouts, logger: logger}

	view, err := home.NewRenderer(cfg).Page(home.Features())
	if err != nil {
		return nil, err
	}
	if err := w.write(ctx, "/", layout.Home, &model.PageData{
		Site:        siteData,
		Title:       view.Title,
		Description: view.Description,
		Permalink:   "/",
		Content:     view.Content,
	}); err != nil {
		return nil, err
	}

	for _, doc := range set.Docs {
		if err := w.write(ctx, doc.Permalink, layout.Doc, &model.PageData{
			Site:        siteData,
			Title:       doc.Title,
			Description: doc.Description,
			Permalink:   doc.Permalink,
			Doc:         doc,
			Prev:        set.Prev(doc),
			Next:        set.Next(doc),
		}); err != nil {
			return nil, err
		}
	}

	for _, cat := range set.Categories {
		data := &model.PageData{
			Site:        siteData,
			Title:       cat.Label,
			Description: cat.Description,
			Permalink:   cat.Permalink,
			Category:    cat,
		}
		if len(cat.Docs) > 0 {
			data.Next = cat.Docs[0]
		}
		if err := w.write(ctx, cat.Permalink, layout.Category, data); err != nil {
			return nil, err
		}
	}

	if err := w.write(ctx, notFoundPage, layout.NotFound, &model.PageData{
		Site:      siteData,
		Title:     "Page Not Found",
		Permalink: notFoundPage,
	}); err != nil {
		return nil, err
	}

	if err := writeSitemap(filepath.Join(opts.OutputDir, sitemapFile), cfg, w.indexable); err != nil {
		return nil, err
	}

	checker, err := links.NewChecker(cfg)
	if err != nil {
		return nil, err
	}
	if err := checker.AddDir(opts.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to collect routes: %w", err)
	}
	broken, err := checker.CheckDir(ctx, opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to check links: %w", err)
	}
	if err := links.Report(logger, cfg.OnBrokenLinks, "links", broken); err != nil {
		return nil, err
	}

	logger.Info("Build completed", "pages", len(w.routes), "docs", len(set.Docs), "categories", len(set.Categories))
	return &Result{
		Routes:      w.routes,
		Docs:        len(set.Docs),
		Categories:  len(set.Categories),
		BrokenLinks: broken,
	}, nil
}

// prepareOutput empties the output directory. It refuses paths that would
// wipe the working directory or the filesystem root.
func prepareOutput(dir string) error {
	clean := filepath.Clean(dir)
	if dir == "" || clean == "." || clean == string(filepath.Separator) {
		return fmt.Errorf("refusing to use '%s' as output directory", dir)
	}
	if err := os.RemoveAll(clean); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", dir, err)
	}
	if err := os.MkdirAll(clean, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}
	return nil
}

func writeStylesheets(outputDir string, cfg *site.Config, logger *slog.Logger) ([]string, error) {
	highlightPath := filepath.Join(outputDir, filepath.FromSlash(strings.TrimPrefix(highlightCSS, "/")))
	if err := os.MkdirAll(filepath.Dir(highlightPath), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create stylesheet directory: %w", err)
	}
	err := writeOutput(highlightPath, func(w io.Writer) error {
		return docs.HighlightCSS(w, cfg.ThemeConfig.Prism.Theme)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write highlight stylesheet: %w", err)
	}
	stylesheets := []string{highlightCSS}

	src := cfg.Presets.Classic.Theme.CustomCSS
	if src == "" {
		return stylesheets, nil
	}
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Custom stylesheet not found, skipping", "path", src)
		return stylesheets, nil
	}
	dst := filepath.Join(outputDir, filepath.FromSlash(strings.TrimPrefix(customCSS, "/")))
	if err := copyFile(src, dst, logger); err != nil {
		return nil, fmt.Errorf("failed to copy custom stylesheet: %w", err)
	}
	return append(stylesheets, customCSS), nil
}

// createFile opens an output file for writing. Swapped in tests.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// writeOutput creates path and fills it with render. A failing Close fails
// the write.
func writeOutput(path string, render func(io.Writer) error) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

type pageWriter struct {
	outputDir string
	layouts   *layout.Layouts
	logger    *slog.Logger
	routes    []string
	indexable []string
	written   map[string]string
}

// write renders one page. Routes ending in .html are written as that file,
// every other route as route/index.html.
func (w *pageWriter) write(ctx context.Context, route, name string, data *model.PageData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if prev, ok := w.written[route]; ok {
		return &PageError{Route: route, Cause: fmt.Errorf("route already generated by the %s layout", prev)}
	}

	rel := filepath.FromSlash(strings.TrimPrefix(route, "/"))
	var outputPath string
	indexable := !strings.HasSuffix(route, ".html")
	if indexable {
		outputPath = filepath.Join(w.outputDir, rel, "index.html")
	} else {
		outputPath = filepath.Join(w.outputDir, rel)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return &PageError{Route: route, Cause: err}
	}
	err := writeOutput(outputPath, func(out io.Writer) error {
		return w.layouts.Render(out, name, data)
	})
	if err != nil {
		return &PageError{Route: route, Cause: err}
	}

	if w.written == nil {
		w.written = make(map[string]string)
	}
	w.written[route] = name
	w.routes = append(w.routes, route)
	if indexable {
		w.indexable = append(w.indexable, route)
	}
	w.logger.Debug("Generated page", "route", route, "layout", name, "path", outputPath)
	return nil
}

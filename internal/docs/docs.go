// Package docs loads the Markdown documentation tree: front matter, ids,
// permalinks, categories and sidebar order.
package docs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/monster-js/documentation/internal/links"
	"github.com/monster-js/documentation/internal/model"
	"github.com/monster-js/documentation/internal/site"
)

const (
	categoryRoute = "category"
	editPrefix    = "docs"
)

var categoryFiles = []string{"_category_.yml", "_category_.yaml"}

type frontMatter struct {
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	SidebarLabel    string `yaml:"sidebar_label"`
	SidebarPosition int    `yaml:"sidebar_position"`
	Slug            string `yaml:"slug"`
	Description     string `yaml:"description"`
}

type categoryMeta struct {
	Label       string `yaml:"label"`
	Position    int    `yaml:"position"`
	Description string `yaml:"description"`
}

// Set is the loaded documentation tree.
type Set struct {
	// Docs in sidebar order: root docs first, then each category in turn.
	Docs        []*model.Doc
	ByID        map[string]*model.Doc
	Categories  []*model.Category
	BrokenLinks []links.BrokenLink
}

// Prev returns the doc before d in sidebar order.
func (s *Set) Prev(d *model.Doc) *model.Doc {
	for i, doc := range s.Docs {
		if doc == d && i > 0 {
			return s.Docs[i-1]
		}
	}
	return nil
}

// Next returns the doc after d in sidebar order.
func (s *Set) Next(d *model.Doc) *model.Doc {
	for i, doc := range s.Docs {
		if doc == d && i+1 < len(s.Docs) {
			return s.Docs[i+1]
		}
	}
	return nil
}

type source struct {
	doc  *model.Doc
	body []byte
}

// Load reads every Markdown file under dir.
func Load(ctx context.Context, cfg *site.Config, dir string, logger *slog.Logger) (*Set, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("docs directory '%s' not found. Please create it and add your Markdown files", dir)
	}

	var sources []*source
	bySource := make(map[string]*model.Doc)
	categoryMetas := make(map[string]categoryMeta)

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", p, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", p, err)
		}
		rel = filepath.ToSlash(rel)

		if isCategoryFile(d.Name()) {
			meta, err := readCategory(p)
			if err != nil {
				return err
			}
			categoryMetas[path.Dir(rel)] = meta
			return nil
		}

		ext := strings.ToLower(path.Ext(d.Name()))
		if ext != ".md" && ext != ".mdx" {
			return nil
		}

		logger.Debug("Processing doc", "path", p)
		src, err := readDoc(cfg, p, rel, logger)
		if err != nil {
			return err
		}
		bySource[rel] = src.doc
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during docs walk: %w", err)
	}

	set := &Set{ByID: make(map[string]*model.Doc)}
	byPermalink := make(map[string]*model.Doc)
	for _, src := range sources {
		if other, ok := set.ByID[src.doc.ID]; ok {
			return nil, fmt.Errorf("duplicate doc id %q in %s and %s", src.doc.ID, other.SourcePath, src.doc.SourcePath)
		}
		if other, ok := byPermalink[src.doc.Permalink]; ok {
			return nil, fmt.Errorf("duplicate doc route %q in %s and %s", src.doc.Permalink, other.SourcePath, src.doc.SourcePath)
		}
		set.ByID[src.doc.ID] = src.doc
		byPermalink[src.doc.Permalink] = src.doc
	}

	resolve := func(from, dest string) (string, bool) {
		p, frag := splitFragment(dest)
		var target string
		if strings.HasPrefix(p, "/") {
			target = path.Clean(strings.TrimPrefix(p, "/"))
		} else {
			target = path.Join(path.Dir(from), p)
		}
		doc, ok := bySource[target]
		if !ok {
			return "", false
		}
		return cfg.URLFor(doc.Permalink) + frag, true
	}
	md := newMarkdown(cfg.ThemeConfig.Prism.Theme, resolve)
	sanitizer := newSanitizer()

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := &convertResult{}
		pc := parser.NewContext()
		pc.Set(sourceKey, src.doc.SourcePath)
		pc.Set(resultKey, result)

		var buf bytes.Buffer
		if err := md.Convert(src.body, &buf, parser.WithContext(pc)); err != nil {
			return nil, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", src.doc.SourcePath, err)
		}
		src.doc.ContentHTML = template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))

		if result.title != "" {
			src.doc.HasTitleHeading = true
			if src.doc.Title == "" {
				src.doc.Title = result.title
			}
		}
		if src.doc.Title == "" {
			src.doc.Title = titleFromName(strings.TrimSuffix(path.Base(src.doc.SourcePath), path.Ext(src.doc.SourcePath)))
		}

		for _, b := range result.broken {
			set.BrokenLinks = append(set.BrokenLinks, links.BrokenLink{Page: src.doc.SourcePath, Target: b})
		}
	}

	set.arrange(cfg, sources, categoryMetas)
	return set, nil
}

// arrange builds categories and the sidebar order.
func (s *Set) arrange(cfg *site.Config, sources []*source, metas map[string]categoryMeta) {
	var roots []*model.Doc
	bySlug := make(map[string]*model.Category)

	for _, src := range sources {
		doc := src.doc
		if doc.Category == "" {
			roots = append(roots, doc)
			continue
		}
		cat, ok := bySlug[doc.Category]
		if !ok {
			meta := metas[doc.Category]
			cat = &model.Category{
				Slug:        doc.Category,
				Label:       meta.Label,
				Description: meta.Description,
				Position:    meta.Position,
				Permalink:   cfg.DocsRoute() + "/" + categoryRoute + "/" + doc.Category,
			}
			if cat.Label == "" {
				cat.Label = titleFromName(doc.Category)
			}
			bySlug[doc.Category] = cat
			s.Categories = append(s.Categories, cat)
		}
		cat.Docs = append(cat.Docs, doc)
	}

	sortDocs(roots)
	sort.SliceStable(s.Categories, func(i, j int) bool {
		a, b := s.Categories[i], s.Categories[j]
		return byPosition(a.Position, b.Position, a.Label, b.Label)
	})

	s.Docs = append(s.Docs, roots...)
	for _, cat := range s.Categories {
		sortDocs(cat.Docs)
		s.Docs = append(s.Docs, cat.Docs...)
	}
}

func sortDocs(docs []*model.Doc) {
	sort.SliceStable(docs, func(i, j int) bool {
		return byPosition(docs[i].Position, docs[j].Position, docs[i].ID, docs[j].ID)
	})
}

// byPosition orders explicit positions first, then by key.
func byPosition(pa, pb int, ka, kb string) bool {
	if pa != pb {
		if pa == 0 {
			return false
		}
		if pb == 0 {
			return true
		}
		return pa < pb
	}
	return ka < kb
}

func readDoc(cfg *site.Config, p, rel string, logger *slog.Logger) (*source, error) {
	fileBytes, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", p, err)
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(fileBytes), &fm)
	if err != nil {
		logger.Warn("Could not parse front matter, treating as pure markdown", "path", p, "error", err)
		body = fileBytes
		fm = frontMatter{}
	}

	dir := path.Dir(rel)
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))

	id := base
	if fm.ID != "" {
		id = fm.ID
	}
	id = path.Join(dir, id)

	slug := id
	if fm.Slug != "" {
		if strings.HasPrefix(fm.Slug, "/") {
			slug = strings.TrimPrefix(fm.Slug, "/")
		} else {
			slug = path.Join(dir, fm.Slug)
		}
	}

	category := ""
	if dir != "." {
		category = strings.SplitN(dir, "/", 2)[0]
	}

	doc := &model.Doc{
		ID:           id,
		Title:        fm.Title,
		SidebarLabel: fm.SidebarLabel,
		Description:  fm.Description,
		Position:     fm.SidebarPosition,
		Category:     category,
		SourcePath:   rel,
		Permalink:    cfg.DocsRoute() + "/" + slug,
	}
	if editURL := cfg.Presets.Classic.Docs.EditURL; editURL != "" {
		doc.EditURL = strings.TrimSuffix(editURL, "/") + "/" + editPrefix + "/" + rel
	}
	return &source{doc: doc, body: body}, nil
}

func readCategory(p string) (categoryMeta, error) {
	var meta categoryMeta
	data, err := os.ReadFile(p)
	if err != nil {
		return meta, fmt.Errorf("failed to read category file '%s': %w", p, err)
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("error unmarshalling category file %s: %w", p, err)
	}
	return meta, nil
}

func isCategoryFile(name string) bool {
	for _, f := range categoryFiles {
		if name == f {
			return true
		}
	}
	return false
}

func titleFromName(name string) string {
	t := strings.ReplaceAll(strings.ReplaceAll(name, "-", " "), "_", " ")
	return cases.Title(language.English).String(t)
}

// ErrUnknownDoc is returned when a doc id does not exist.
var ErrUnknownDoc = errors.New("unknown doc id")

// Lookup returns the doc with the given id.
func (s *Set) Lookup(id string) (*model.Doc, error) {
	doc, ok := s.ByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDoc, id)
	}
	return doc, nil
}

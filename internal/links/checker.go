package links

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/monster-js/documentation/internal/site"
)

// Checker knows every route of a generated site and reports anchors that
// point to none of them.
type Checker struct {
	site    *url.URL
	baseURL string
	routes  map[string]struct{}
}

func NewChecker(cfg *site.Config) (*Checker, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid site URL: %s (must have scheme and host)", cfg.URL)
	}
	return &Checker{
		site:    u,
		baseURL: cfg.BaseURL,
		routes:  make(map[string]struct{}),
	}, nil
}

// AddRoute registers a route relative to the base URL, e.g. "/docs/intro".
func (c *Checker) AddRoute(route string) {
	c.routes[normalize(route)] = struct{}{}
}

// HasRoute reports whether route was registered.
func (c *Checker) HasRoute(route string) bool {
	_, ok := c.routes[normalize(route)]
	return ok
}

// AddDir registers every file under dir as a route. Directories holding an
// index.html are registered as routes too.
func (c *Checker) AddDir(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
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
		c.AddRoute(rel)
		if path.Base(rel) == "index.html" {
			c.AddRoute(path.Dir(rel))
		}
		return nil
	})
}

// Check returns the broken internal links of one HTML page served at route.
func (c *Checker) Check(route string, r io.Reader) ([]BrokenLink, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML of %s: %w", route, err)
	}

	pageURL := c.site.ResolveReference(&url.URL{Path: c.baseURL + strings.TrimPrefix(route, "/")})

	seen := make(map[string]bool)
	var broken []BrokenLink
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" || seen[href] {
			return
		}
		seen[href] = true
		if !c.resolves(pageURL, href) {
			broken = append(broken, BrokenLink{Page: route, Target: href})
		}
	})
	return broken, nil
}

// CheckDir checks every HTML page under dir.
func (c *Checker) CheckDir(ctx context.Context, dir string) ([]BrokenLink, error) {
	var broken []BrokenLink
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", p, err)
		}
		route := "/" + filepath.ToSlash(rel)
		if path.Base(route) == "index.html" {
			route = strings.TrimSuffix(route, "index.html")
		}

		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", p, err)
		}
		defer f.Close()

		found, err := c.Check(route, f)
		if err != nil {
			return err
		}
		broken = append(broken, found...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return broken, nil
}

func (c *Checker) resolves(pageURL *url.URL, href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return true
	}

	abs := pageURL.ResolveReference(u)
	if abs.Host != c.site.Host {
		return true
	}

	p := abs.Path
	if p+"/" == c.baseURL {
		p = c.baseURL
	}
	if !strings.HasPrefix(p, c.baseURL) {
		return false
	}
	return c.HasRoute(strings.TrimPrefix(p, c.baseURL))
}

func normalize(route string) string {
	p := path.Clean("/" + route)
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

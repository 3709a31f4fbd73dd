package build

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/monster-js/documentation/internal/site"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

func writeSitemap(path string, cfg *site.Config, routes []string) error {
	set := urlSet{Xmlns: sitemapNS}
	for _, r := range routes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        cfg.AbsoluteURL(r),
			ChangeFreq: "weekly",
			Priority:   0.5,
		})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	data = append([]byte(xml.Header), data...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sitemap %s: %w", path, err)
	}
	return nil
}

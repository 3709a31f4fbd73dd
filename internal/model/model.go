package model

import (
	"html/template"

	"github.com/monster-js/documentation/internal/site"
)

// Doc represents a single documentation page.
type Doc struct {
	ID              string
	Title           string
	SidebarLabel    string
	Description     string
	Position        int
	Category        string
	SourcePath      string
	Permalink       string
	ContentHTML     template.HTML
	HasTitleHeading bool
	EditURL         string
}

// Label is the text shown for the doc in the sidebar.
func (d *Doc) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}

// Category groups the docs found in one directory.
type Category struct {
	Slug        string
	Label       string
	Description string
	Position    int
	Permalink   string
	Docs        []*Doc
}

// NavLink is a resolved navbar or footer link.
type NavLink struct {
	Label    string
	Href     string
	Position string
	External bool
}

// FooterGroup is a titled column of footer links.
type FooterGroup struct {
	Title string
	Links []NavLink
}

// SiteData holds all site-wide data, including configuration and content.
type SiteData struct {
	Config      *site.Config
	Docs        []*Doc
	DocsByID    map[string]*Doc
	Categories  []*Category
	Navbar      []NavLink
	Footer      []FooterGroup
	Copyright   string
	Stylesheets []string
}

// NavbarAt returns the navbar links placed on the given side.
func (s *SiteData) NavbarAt(position string) []NavLink {
	var out []NavLink
	for _, l := range s.Navbar {
		p := l.Position
		if p == "" {
			p = "left"
		}
		if p == position {
			out = append(out, l)
		}
	}
	return out
}

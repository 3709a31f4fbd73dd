package build

import (
	"fmt"

	"github.com/monster-js/documentation/internal/docs"
	"github.com/monster-js/documentation/internal/model"
	"github.com/monster-js/documentation/internal/site"
)

// resolveNavbar turns navbar items into links. Doc items must name an
// existing doc id.
func resolveNavbar(cfg *site.Config, set *docs.Set) ([]model.NavLink, error) {
	out := make([]model.NavLink, 0, len(cfg.ThemeConfig.Navbar.Items))
	for _, item := range cfg.ThemeConfig.Navbar.Items {
		var target string
		switch {
		case item.Type == "doc":
			doc, err := set.Lookup(item.DocID)
			if err != nil {
				return nil, fmt.Errorf("navbar item %q: %w", item.Label, err)
			}
			target = doc.Permalink
		case item.Href != "":
			target = item.Href
		default:
			target = item.To
		}
		out = append(out, navLink(cfg, item.Label, target, item.Position))
	}
	return out, nil
}

func resolveFooter(cfg *site.Config) []model.FooterGroup {
	groups := make([]model.FooterGroup, 0, len(cfg.ThemeConfig.Footer.Links))
	for _, g := range cfg.ThemeConfig.Footer.Links {
		group := model.FooterGroup{Title: g.Title}
		for _, l := range g.Items {
			group.Links = append(group.Links, navLink(cfg, l.Label, l.Target(), ""))
		}
		groups = append(groups, group)
	}
	return groups
}

func navLink(cfg *site.Config, label, target, position string) model.NavLink {
	return model.NavLink{
		Label:    label,
		Href:     cfg.URLFor(target),
		Position: position,
		External: site.IsExternal(target),
	}
}

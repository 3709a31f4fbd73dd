package model

import "html/template"

// PageData is the template context of one rendered page.
type PageData struct {
	Site        *SiteData
	Title       string
	Description string
	Permalink   string
	Content     template.HTML
	Doc         *Doc
	Category    *Category
	Prev        *Doc
	Next        *Doc
}

// FullTitle is the document title shown in the browser tab.
func (p *PageData) FullTitle() string {
	if p.Title == "" {
		return p.Site.Config.Title
	}
	return p.Title + " | " + p.Site.Config.Title
}

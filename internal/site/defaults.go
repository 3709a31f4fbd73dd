package site

// Default returns the MonsterJS site configuration. Every call returns a
// new value so callers never share mutable state.
func Default() *Config {
	return &Config{
		Title:                 "MonsterJS",
		Tagline:               "Simple but powerful JavaScript framework.",
		URL:                   "https://monster-js.com",
		BaseURL:               "/",
		OnBrokenLinks:         PolicyThrow,
		OnBrokenMarkdownLinks: PolicyWarn,
		Favicon:               "img/monster-32.png",
		OrganizationName:      "monster-js",
		ProjectName:           "monster-js",
		I18n: I18n{
			DefaultLocale: "en",
			Locales:       []string{"en"},
		},
		Presets: Presets{
			Classic: Classic{
				GoogleAnalytics: GoogleAnalytics{
					TrackingID:  "UA-229775239-1",
					AnonymizeIP: true,
				},
				Docs: DocsOptions{
					RouteBasePath: "docs",
					EditURL:       "https://github.com/monster-js/monster-js",
				},
				Theme: ThemeOptions{
					CustomCSS: "src/css/custom.css",
				},
			},
		},
		ThemeConfig: ThemeConfig{
			Image: "/img/og-image.png",
			Metadata: []Meta{
				{Name: "keywords", Content: "web component, micro-frontend, monster-js, monsterjs, javascript framework"},
			},
			Navbar: Navbar{
				Title: "MonsterJS",
				Logo: Logo{
					Alt: "MonsterJS",
					Src: "img/monster-32.png",
				},
				Items: []NavItem{
					{
						Type:     "doc",
						DocID:    "getting-started/what-is-monster-js",
						Position: "left",
						Label:    "Documentation",
					},
					{
						Href:     "https://github.com/monster-js",
						Label:    "GitHub",
						Position: "right",
					},
				},
			},
			Footer: Footer{
				Style: "dark",
				Links: []FooterGroup{
					{
						Title: "Docs",
						Items: []Link{
							{Label: "Getting started", To: "/docs/category/getting-started"},
							{Label: "Unit testing", To: "/docs/category/unit-testing"},
							{Label: "CLI", To: "/docs/category/cli"},
						},
					},
					{
						Title: "Community",
						Items: []Link{
							{Label: "Stack Overflow", Href: "https://stackoverflow.com/questions/tagged/monster-js"},
							{Label: "Discord", Href: "https://discord.gg/CY28Qq5yWE"},
							{Label: "Twitter", Href: "https://twitter.com/mfpjayb"},
						},
					},
					{
						Title: "More",
						Items: []Link{
							{Label: "GitHub", Href: "https://github.com/monster-js"},
							{Label: "Support Us", To: "/docs/getting-started/what-is-monster-js#support-us"},
						},
					},
				},
				Copyright: "Copyright © {year} Darius Bualan Jr.",
			},
			Prism: Prism{
				Theme: "github",
			},
			ColorMode: ColorMode{
				DefaultMode:               "light",
				DisableSwitch:             true,
				RespectPrefersColorScheme: false,
			},
			Hero: Hero{
				Subtitles: []string{"Simple and lightweight", "Web Components"},
				ProjectLink: Link{
					Label: "GitHub",
					Href:  "https://github.com/monster-js",
				},
				GetStartedLink: Link{
					Label: "Get Started",
					To:    "/docs/getting-started/what-is-monster-js",
				},
			},
		},
		Scripts: []Script{},
	}
}

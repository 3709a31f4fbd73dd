package docs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monster-js/documentation/internal/links"
	"github.com/monster-js/documentation/internal/site"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func sampleTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"intro.md": "# Welcome\n\nRead [the basics](getting-started/what-is-monster-js.md#support-us).\n",
		"getting-started/_category_.yml": "label: Getting started\nposition: 1\ndescription: First steps\n",
		"getting-started/what-is-monster-js.md": `---
title: What is MonsterJS?
sidebar_position: 1
---

MonsterJS is a framework. See [installation](installation.md) and [missing](nope.md).

## Support us
`,
		"getting-started/installation.md": `---
sidebar_position: 2
sidebar_label: Install
---

# Installation

` + "```bash\nnpm install -g monster-js-cli\n```\n",
		"cli/commands.md":             "Run [install](/getting-started/installation.md).\n",
		"cli/_category_.yml":          "position: 2\n",
		"unit-testing/setup-tests.md": "---\nid: setup\nslug: /testing/setup\n---\nTests.\n",
	})
}

func TestLoad_IDsAndPermalinks(t *testing.T) {
	set, err := Load(context.Background(), site.Default(), sampleTree(t), discardLogger())
	require.NoError(t, err)

	require.Len(t, set.ByID, 5)

	doc, err := set.Lookup("getting-started/what-is-monster-js")
	require.NoError(t, err)
	assert.Equal(t, "/docs/getting-started/what-is-monster-js", doc.Permalink)
	assert.Equal(t, "getting-started", doc.Category)
	assert.Equal(t, "What is MonsterJS?", doc.Title)
	assert.Equal(t, "https://github.com/monster-js/monster-js/docs/getting-started/what-is-monster-js.md", doc.EditURL)

	custom, err := set.Lookup("unit-testing/setup")
	require.NoError(t, err)
	assert.Equal(t, "/docs/testing/setup", custom.Permalink)
}

func TestLoad_Titles(t *testing.T) {
	set, err := Load(context.Background(), site.Default(), sampleTree(t), discardLogger())
	require.NoError(t, err)

	install := set.ByID["getting-started/installation"]
	assert.Equal(t, "Installation", install.Title)
	assert.True(t, install.HasTitleHeading)
	assert.Equal(t, "Install", install.Label())

	commands := set.ByID["cli/commands"]
	assert.Equal(t, "Commands", commands.Title)
	assert.False(t, commands.HasTitleHeading)

	what := set.ByID["getting-started/what-is-monster-js"]
	assert.False(t, what.HasTitleHeading)
	assert.Equal(t, "What is MonsterJS?", what.Label())
}

func TestLoad_CategoriesAndSidebarOrder(t *testing.T) {
	set, err := Load(context.Background(), site.Default(), sampleTree(t), discardLogger())
	require.NoError(t, err)

	require.Len(t, set.Categories, 3)
	assert.Equal(t, "Getting started", set.Categories[0].Label)
	assert.Equal(t, "First steps", set.Categories[0].Description)
	assert.Equal(t, "/docs/category/getting-started", set.Categories[0].Permalink)
	assert.Equal(t, "Cli", set.Categories[1].Label)
	assert.Equal(t, "Unit Testing", set.Categories[2].Label)

	var ids []string
	for _, d := range set.Docs {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{
		"intro",
		"getting-started/what-is-monster-js",
		"getting-started/installation",
		"cli/commands",
		"unit-testing/setup",
	}, ids)

	first := set.Docs[0]
	assert.Nil(t, set.Prev(first))
	assert.Equal(t, set.Docs[1], set.Next(first))
	assert.Nil(t, set.Next(set.Docs[len(set.Docs)-1]))
}

func TestLoad_MarkdownLinks(t *testing.T) {
	set, err := Load(context.Background(), site.Default(), sampleTree(t), discardLogger())
	require.NoError(t, err)

	intro := string(set.ByID["intro"].ContentHTML)
	assert.Contains(t, intro, `href="/docs/getting-started/what-is-monster-js#support-us"`)

	what := string(set.ByID["getting-started/what-is-monster-js"].ContentHTML)
	assert.Contains(t, what, `href="/docs/getting-started/installation"`)
	assert.Contains(t, what, `id="support-us"`)

	commands := string(set.ByID["cli/commands"].ContentHTML)
	assert.Contains(t, commands, `href="/docs/getting-started/installation"`)

	assert.Equal(t, []links.BrokenLink{
		{Page: "getting-started/what-is-monster-js.md", Target: "nope.md"},
	}, set.BrokenLinks)
}

func TestLoad_CodeHighlighting(t *testing.T) {
	set, err := Load(context.Background(), site.Default(), sampleTree(t), discardLogger())
	require.NoError(t, err)

	assert.Contains(t, string(set.ByID["getting-started/installation"].ContentHTML), `class="chroma"`)
}

func TestLoad_SanitizesRawHTML(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"raw.md": "# Raw\n\n<div class=\"admonition\" onclick=\"steal()\">Note</div>\n\n<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\">bad</a>\n\n## Support us\n",
	})

	set, err := Load(context.Background(), site.Default(), dir, discardLogger())
	require.NoError(t, err)

	html := string(set.ByID["raw"].ContentHTML)
	assert.Contains(t, html, `<div class="admonition">Note</div>`)
	assert.Contains(t, html, `id="support-us"`)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "onclick")
	assert.NotContains(t, html, "javascript:")
}

func TestLoad_BaseURL(t *testing.T) {
	cfg := site.Default()
	cfg.BaseURL = "/monster/"

	set, err := Load(context.Background(), cfg, sampleTree(t), discardLogger())
	require.NoError(t, err)

	assert.Contains(t, string(set.ByID["intro"].ContentHTML), `href="/monster/docs/getting-started/what-is-monster-js#support-us"`)
}

func TestLoad_DuplicateID(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.md": "---\nid: same\n---\nA\n",
		"b.md": "---\nid: same\n---\nB\n",
	})

	_, err := Load(context.Background(), site.Default(), dir, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate doc id "same"`)
}

func TestLoad_DuplicateRoute(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"cli/a.md": "---\nslug: /shared\n---\n# A\n",
		"cli/b.md": "---\nslug: /shared\n---\n# B\n",
	})

	_, err := Load(context.Background(), site.Default(), dir, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate doc route "/docs/shared" in cli/a.md and cli/b.md`)
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(context.Background(), site.Default(), filepath.Join(t.TempDir(), "docs"), discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, site.Default(), sampleTree(t), discardLogger())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLookup_Unknown(t *testing.T) {
	set, err := Load(context.Background(), site.Default(), sampleTree(t), discardLogger())
	require.NoError(t, err)

	_, err = set.Lookup("nope")
	assert.True(t, errors.Is(err, ErrUnknownDoc))
}

func TestIsMarkdownLink(t *testing.T) {
	tests := map[string]bool{
		"intro.md":                 true,
		"../cli/commands.mdx#top":  true,
		"intro.md?x=1":             true,
		"https://example.com/a.md": false,
		"#support-us":              false,
		"/docs/intro":              false,
		"":                         false,
	}
	for dest, want := range tests {
		assert.Equal(t, want, isMarkdownLink(dest), dest)
	}
}

func TestHighlightCSS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HighlightCSS(&buf, "github"))
	assert.Contains(t, buf.String(), ".chroma")
}

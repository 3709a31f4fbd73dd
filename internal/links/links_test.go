package links

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monster-js/documentation/internal/site"
)

func newChecker(t *testing.T, baseURL string, routes ...string) *Checker {
	t.Helper()
	cfg := site.Default()
	cfg.BaseURL = baseURL
	c, err := NewChecker(cfg)
	require.NoError(t, err)
	for _, r := range routes {
		c.AddRoute(r)
	}
	return c
}

func TestChecker_Check(t *testing.T) {
	c := newChecker(t, "/", "/", "/docs/intro", "/img/logo.png")

	page := `<html><body>
		<a href="/docs/intro">ok</a>
		<a href="/docs/intro/">ok trailing slash</a>
		<a href="/docs/intro#support-us">ok fragment</a>
		<a href="#top">ok same page</a>
		<a href="/">home</a>
		<a href="https://github.com/monster-js">external</a>
		<a href="mailto:team@monster-js.com">mail</a>
		<a href="https://monster-js.com/docs/intro">absolute same host</a>
		<a href="/docs/missing">broken</a>
		<a href="/docs/missing">broken duplicate</a>
		<a href="https://monster-js.com/nope">broken absolute</a>
	</body></html>`

	broken, err := c.Check("/", strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []BrokenLink{
		{Page: "/", Target: "/docs/missing"},
		{Page: "/", Target: "https://monster-js.com/nope"},
	}, broken)
}

func TestChecker_RelativeLinks(t *testing.T) {
	c := newChecker(t, "/", "/docs/a", "/docs/b")

	broken, err := c.Check("/docs/a/", strings.NewReader(`<a href="../b">sibling</a><a href="../c">missing</a>`))
	require.NoError(t, err)
	assert.Equal(t, []BrokenLink{{Page: "/docs/a/", Target: "../c"}}, broken)
}

func TestChecker_BaseURL(t *testing.T) {
	c := newChecker(t, "/monster/", "/", "/docs/intro")

	broken, err := c.Check("/", strings.NewReader(`
		<a href="/monster/docs/intro">ok</a>
		<a href="/monster">ok root</a>
		<a href="/docs/intro">outside base</a>`))
	require.NoError(t, err)
	assert.Equal(t, []BrokenLink{{Page: "/", Target: "/docs/intro"}}, broken)
}

func TestChecker_Dir(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	write("index.html", `<a href="/docs/intro">intro</a><a href="/robots.txt">robots</a>`)
	write("docs/intro/index.html", `<a href="/">home</a><a href="/docs/gone">gone</a>`)
	write("robots.txt", "User-agent: *")

	c := newChecker(t, "/")
	require.NoError(t, c.AddDir(dir))
	assert.True(t, c.HasRoute("/docs/intro"))
	assert.True(t, c.HasRoute("/"))

	broken, err := c.CheckDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []BrokenLink{{Page: "/docs/intro/", Target: "/docs/gone"}}, broken)
}

func TestNewChecker_InvalidURL(t *testing.T) {
	cfg := site.Default()
	cfg.URL = "monster-js.com"

	_, err := NewChecker(cfg)
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	broken := []BrokenLink{{Page: "/", Target: "/missing"}}

	tests := []struct {
		policy  site.Policy
		wantErr bool
		wantLog string
	}{
		{site.PolicyIgnore, false, ""},
		{site.PolicyLog, false, "level=INFO"},
		{site.PolicyWarn, false, "level=WARN"},
		{site.PolicyThrow, true, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			err := Report(logger, tt.policy, "links", broken)
			if tt.wantErr {
				var berr *BrokenLinksError
				require.True(t, errors.As(err, &berr))
				assert.Equal(t, broken, berr.Links)
				assert.Contains(t, err.Error(), "found 1 broken links")
				assert.Contains(t, err.Error(), "/missing")
				return
			}
			require.NoError(t, err)
			if tt.wantLog == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.wantLog)
				assert.Contains(t, buf.String(), "target=/missing")
			}
		})
	}
}

func TestReport_NothingBroken(t *testing.T) {
	assert.NoError(t, Report(slog.Default(), site.PolicyThrow, "links", nil))
}

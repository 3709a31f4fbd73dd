package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":                 "<h1>MonsterJS</h1>",
		"404.html":                   "<h1>Page Not Found</h1>",
		"docs/intro/index.html":      "<h1>Intro</h1>",
		"img/monster-32.png":         "png",
		"assets/css/highlight.css":   ".chroma{}",
		"docs/category/cli/.gitkeep": "",
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	h := NewHandler(siteDir(t), "/", slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"home", "/", http.StatusOK, "<h1>MonsterJS</h1>"},
		{"doc directory", "/docs/intro/", http.StatusOK, "<h1>Intro</h1>"},
		{"static file", "/img/monster-32.png", http.StatusOK, "png"},
		{"unknown path", "/docs/nowhere", http.StatusNotFound, "Page Not Found"},
		{"directory without index", "/docs/category/cli/", http.StatusNotFound, "Page Not Found"},
		{"path traversal", "/../../etc/passwd", http.StatusNotFound, "Page Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestHandler_DocRedirectsToSlash(t *testing.T) {
	h := NewHandler(siteDir(t), "/", slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := get(t, h, "/docs/intro")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "intro/", rec.Header().Get("Location"))
}

func TestHandler_BaseURL(t *testing.T) {
	h := NewHandler(siteDir(t), "/monster/", slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"home", "/monster/", http.StatusOK, "<h1>MonsterJS</h1>"},
		{"doc directory", "/monster/docs/intro/", http.StatusOK, "<h1>Intro</h1>"},
		{"static file", "/monster/img/monster-32.png", http.StatusOK, "png"},
		{"stylesheet", "/monster/assets/css/highlight.css", http.StatusOK, ".chroma{}"},
		{"unknown path under base", "/monster/docs/nowhere", http.StatusNotFound, "Page Not Found"},
		{"path outside base", "/docs/intro/", http.StatusNotFound, "Page Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_BaseURLRedirects(t *testing.T) {
	h := NewHandler(siteDir(t), "/monster/", slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, target := range []string{"/", "/monster"} {
		rec := get(t, h, target)
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/monster/", rec.Header().Get("Location"), target)
	}

	rec := get(t, h, "/monster/docs/intro")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "intro/", rec.Header().Get("Location"))
}

func TestHandler_MissingNotFoundPage(t *testing.T) {
	h := NewHandler(t.TempDir(), "/", slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := get(t, h, "/anything")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404 page not found")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, addr, http.NotFoundHandler(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

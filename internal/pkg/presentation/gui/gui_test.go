package gui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestThatEveryPageIsRendered(t *testing.T) {
	is, srv := setupTest(t, Config{})

	for _, p := range Pages {
		resp, body := testRequest(is, srv, p.Path)
		is.Equal(resp.StatusCode, http.StatusOK)
		is.True(strings.Contains(body, "<title>"+p.Title+"</title>"))
	}
}

func TestThatUnknownPathRendersNotFoundView(t *testing.T) {
	is, srv := setupTest(t, Config{})

	resp, body := testRequest(is, srv, "/no/such/page")
	is.Equal(resp.StatusCode, http.StatusNotFound)
	is.True(strings.Contains(body, "<title>Not Found</title>"))
}

func TestThatStaticFilesAreServed(t *testing.T) {
	is, srv := setupTest(t, Config{})

	resp, body := testRequest(is, srv, "/static/js/app.js")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "/api/data"))
}

func TestThatMissingFaviconIsNotFound(t *testing.T) {
	is, srv := setupTest(t, Config{})

	resp, _ := testRequest(is, srv, "/favicon.ico")
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestThatFaviconIsServedFromStaticDir(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "favicon.ico"), []byte{0, 0, 1, 0}, 0o644))

	_, srv := setupTest(t, Config{StaticDir: dir})

	resp, body := testRequest(is, srv, "/favicon.ico")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(resp.Header.Get("Content-Type"), "image/x-icon")
	is.Equal(len(body), 4)
}

func TestThatPanicRendersInternalErrorView(t *testing.T) {
	is := is.New(t)

	router := chi.NewRouter()
	_, err := RegisterHandlers(zerolog.Nop(), router, Config{})
	is.NoErr(err)

	router.Get("/explode", func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, body := testRequest(is, srv, "/explode")
	is.Equal(resp.StatusCode, http.StatusInternalServerError)
	is.True(strings.Contains(body, "<title>Internal Server Error</title>"))
}

func TestThatMissingErrorViewsFallBackToPlainText(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, layoutFile), []byte(`{{define "layout"}}<title>{{.Title}}</title>{{template "content" .}}{{end}}`), 0o644))
	for _, p := range Pages {
		is.NoErr(os.WriteFile(filepath.Join(dir, p.View+".html"), []byte(`{{define "content"}}ok{{end}}`), 0o644))
	}

	_, srv := setupTest(t, Config{TemplatesDir: dir})

	resp, body := testRequest(is, srv, "/missing")
	is.Equal(resp.StatusCode, http.StatusNotFound)
	is.Equal(strings.TrimSpace(body), "not found")
}

func TestThatMissingPageViewIsAnError(t *testing.T) {
	is := is.New(t)

	_, err := RegisterHandlers(zerolog.Nop(), chi.NewRouter(), Config{TemplatesDir: t.TempDir()})
	is.True(err != nil)
}

func setupTest(t *testing.T, cfg Config) (*is.I, *httptest.Server) {
	is := is.New(t)

	router, err := RegisterHandlers(zerolog.Nop(), chi.NewRouter(), cfg)
	is.NoErr(err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return is, srv
}

func testRequest(is *is.I, ts *httptest.Server, path string) (*http.Response, string) {
	resp, err := http.Get(ts.URL + path)
	is.NoErr(err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	return resp, string(body)
}

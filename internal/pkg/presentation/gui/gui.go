package gui

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/logging"
)

//go:embed templates
var embeddedTemplates embed.FS

//go:embed static
var embeddedStatic embed.FS

type Page struct {
	Path  string
	View  string
	Title string
}

var Pages = []Page{
	{Path: "/", View: "index", Title: "GAIDESK Dashboard"},
	{Path: "/about", View: "about", Title: "About GAIDESK"},
	{Path: "/session", View: "session", Title: "Session Summary"},
	{Path: "/dashboard", View: "dashboard", Title: "Dashboard"},
	{Path: "/devices", View: "devices", Title: "Devices"},
	{Path: "/api-docs", View: "api-docs", Title: "API Documentation"},
	{Path: "/alerts", View: "alerts", Title: "Alerts"},
	{Path: "/live", View: "live", Title: "Live View"},
}

const (
	notFoundView      string = "404"
	notFoundTitle     string = "Not Found"
	internalErrorView string = "500"
	internalErrTitle  string = "Internal Server Error"
	layoutFile        string = "layout.html"
)

// Config points at directories that replace the embedded templates and
// static assets. Empty fields keep the embedded ones.
type Config struct {
	TemplatesDir string
	StaticDir    string
}

type Views struct {
	templates map[string]*template.Template
}

// LoadViews parses one template set per view. The error views are optional,
// a plain text response is written in their place when they are missing.
func LoadViews(fsys fs.FS) (*Views, error) {
	v := &Views{templates: map[string]*template.Template{}}

	for _, p := range Pages {
		t, err := parseView(fsys, p.View)
		if err != nil {
			return nil, err
		}
		v.templates[p.View] = t
	}

	for _, name := range []string{notFoundView, internalErrorView} {
		t, err := parseView(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		v.templates[name] = t
	}

	return v, nil
}

func parseView(fsys fs.FS, name string) (*template.Template, error) {
	if _, err := fs.Stat(fsys, name+".html"); err != nil {
		return nil, fmt.Errorf("view %s: %w", name, err)
	}

	t, err := template.New(name).ParseFS(fsys, layoutFile, name+".html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse view %s: %w", name, err)
	}

	return t, nil
}

// Render writes the named view. Nothing is written if the view is missing
// or fails to execute, so that the caller can fall back to something else.
func (v *Views) Render(w http.ResponseWriter, status int, view, title string) error {
	t, ok := v.templates[view]
	if !ok {
		return fmt.Errorf("no such view %q", view)
	}

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout", struct{ Title string }{Title: title})
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

func (v *Views) renderError(w http.ResponseWriter, status int) {
	view, title := notFoundView, notFoundTitle
	if status != http.StatusNotFound {
		view, title = internalErrorView, internalErrTitle
	}

	if err := v.Render(w, status, view, title); err != nil {
		http.Error(w, strings.ToLower(http.StatusText(status)), status)
	}
}

func RegisterHandlers(log zerolog.Logger, router *chi.Mux, cfg Config) (*chi.Mux, error) {
	templates, err := subFS(embeddedTemplates, "templates", cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}

	static, err := subFS(embeddedStatic, "static", cfg.StaticDir)
	if err != nil {
		return nil, err
	}

	views, err := LoadViews(templates)
	if err != nil {
		return nil, err
	}

	router.Use(Recoverer(log, views))

	for _, p := range Pages {
		router.Get(p.Path, NewPageHandler(views, p))
	}

	router.Get("/favicon.ico", NewFaviconHandler(views, static))
	FileServer(router, "/static", http.FS(static))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		views.renderError(w, http.StatusNotFound)
	})

	return router, nil
}

func subFS(embedded embed.FS, dir, override string) (fs.FS, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return nil, fmt.Errorf("bad directory %s: %w", override, err)
		}
		return os.DirFS(override), nil
	}
	return fs.Sub(embedded, dir)
}

func NewPageHandler(views *Views, p Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := views.Render(w, http.StatusOK, p.View, p.Title)
		if err != nil {
			log := logging.GetFromContext(r.Context())
			log.Error().Err(err).Str("view", p.View).Msg("failed to render view")
			views.renderError(w, http.StatusInternalServerError)
		}
	}
}

func NewFaviconHandler(views *Views, static fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile(static, "favicon.ico")
		if err != nil {
			views.renderError(w, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "image/x-icon")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

// Recoverer turns a panicking request into the internal error view.
func Recoverer(log zerolog.Logger, views *Views) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("stack", string(debug.Stack())).
					Msgf("recovered from panic: %v", rvr)

				views.renderError(w, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}

// Package web serves the catalog as server-rendered HTML. Every request
// derives a fresh Tree from the query string; the detail view is its own URL.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/Makepad-fr/giveaway/internal/catalog"
	"github.com/Makepad-fr/giveaway/internal/debug"
	"github.com/Makepad-fr/giveaway/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Config configures a Server.
type Config struct {
	Catalog     catalog.Options
	Placeholder string
	// MediaDir is served under /media/ so relative image references resolve.
	MediaDir string
	// Quiet drops the per-request log line (tests).
	Quiet bool
}

// Server holds the current store; Replace swaps it atomically on reload.
type Server struct {
	cfg    Config
	store  atomic.Pointer[catalog.Store]
	tmpl   *template.Template
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewServer parses the embedded templates.
func NewServer(cfg Config, items []model.Item) (*Server, error) {
	if cfg.Placeholder == "" {
		cfg.Placeholder = catalog.DefaultPlaceholderImage
	}
	s := &Server{
		cfg:    cfg,
		md:     goldmark.New(),
		policy: bluemonday.UGCPolicy(),
	}
	funcs := template.FuncMap{
		"media": s.mediaURL,
	}
	t, err := template.New("page.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	s.tmpl = t
	s.Replace(items)
	return s, nil
}

// Replace installs a freshly loaded item list.
func (s *Server) Replace(items []model.Item) {
	s.store.Store(catalog.NewStore(items))
	debug.Log("web: serving %d items", len(items))
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if !s.cfg.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.handleIndex)
	r.Get("/items/{index}", s.handleDetail)
	r.Get("/items.json", s.handleJSON)
	if s.cfg.MediaDir != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(s.cfg.MediaDir))))
	}
	return r
}

// ViewStateFromQuery reads status, q and category. Unknown statuses fall back to all.
func ViewStateFromQuery(q url.Values) catalog.ViewState {
	v := catalog.DefaultViewState()
	if f, err := catalog.ParseStatusFilter(q.Get("status")); err == nil {
		v = v.WithStatus(f)
	}
	return v.WithSearch(q.Get("q")).WithCategory(q.Get("category"))
}

// Query encodes a view state, omitting defaults.
func Query(v catalog.ViewState) url.Values {
	q := url.Values{}
	if v.Status != "" && v.Status != catalog.FilterAll {
		q.Set("status", string(v.Status))
	}
	if v.Search != "" {
		q.Set("q", v.Search)
	}
	if c := strings.TrimSpace(v.Category); c != "" && !strings.EqualFold(c, catalog.All) {
		q.Set("category", c)
	}
	return q
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	store := s.store.Load()
	v := ViewStateFromQuery(r.URL.Query())
	s.render(w, s.page(store, v, nil))
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	store := s.store.Load()
	v := ViewStateFromQuery(r.URL.Query())
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	it := store.At(i)
	if err != nil || it == nil {
		http.NotFound(w, r)
		return
	}
	modal := catalog.Modal{Placeholder: s.cfg.Placeholder}
	if !modal.Open(store, catalog.NewCard(i, *it)) {
		// Taken items have no detail view.
		http.Redirect(w, r, withQuery("/", Query(v)), http.StatusSeeOther)
		return
	}
	s.render(w, s.page(store, v, &modal))
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	store := s.store.Load()
	items := make([]model.Item, 0, store.Len())
	for _, it := range store.All() {
		items = append(items, it)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		debug.Log("web: encode items: %v", err)
	}
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page.tmpl", data); err != nil {
		debug.Log("web: render: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// mediaURL maps an image reference to a URL. Absolute URLs pass through.
func (s *Server) mediaURL(ref string) string {
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(ref, "/") {
		return ref
	}
	return "/media/" + strings.TrimPrefix(ref, "./")
}

// markdown renders a description to sanitized HTML.
func (s *Server) markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(s.policy.SanitizeBytes(buf.Bytes()))
}

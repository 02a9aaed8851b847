// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the search page. Each browser session, keyed by a
// cookie, owns its own controller, so one visitor's results and filter
// never leak into another's.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/figshare-search/internal/controller"
	"github.com/pdiddy/figshare-search/internal/logging"
	"github.com/pdiddy/figshare-search/internal/render"
	"github.com/pdiddy/figshare-search/pkg/types"
)

const (
	sessionCookie   = "sid"
	shutdownTimeout = 10 * time.Second
)

//go:embed templates/page.html
var pageFS embed.FS

var pageTemplate = template.Must(template.Must(render.Templates.Clone()).ParseFS(pageFS, "templates/page.html"))

// Server is the HTTP front end.
type Server struct {
	searcher controller.Searcher
	cfg      types.Config
	log      logrus.FieldLogger
	sessions *cache.Cache
}

// NewServer returns a server whose sessions search through s.
func NewServer(s controller.Searcher, cfg types.Config, log logrus.FieldLogger) *Server {
	cfg = cfg.WithDefaults()
	if log == nil {
		log = logging.Discard()
	}
	ttl := cfg.Serve.SessionTTL
	return &Server{
		searcher: s,
		cfg:      cfg,
		log:      log,
		sessions: cache.New(ttl, ttl/2),
	}
}

// Handler returns the routed handler with request logging applied.
func (s *Server) Handler() http.Handler {
	api := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Serve.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /filter", s.handleFilter)
	mux.HandleFunc("POST /retry", s.handleRetry)
	mux.Handle("GET /api/results", api.Handler(http.HandlerFunc(s.handleAPIResults)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return s.logRequests(mux)
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Serve.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// session returns the controller for the request's session, creating the
// session and setting its cookie when needed. Each access renews the TTL.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *controller.Controller {
	if ck, err := r.Cookie(sessionCookie); err == nil {
		if v, ok := s.sessions.Get(ck.Value); ok {
			ctrl := v.(*controller.Controller)
			s.sessions.SetDefault(ck.Value, ctrl)
			return ctrl
		}
	}

	id := uuid.NewString()
	ctrl := controller.New(s.searcher, s.log.WithField("session", id))
	s.sessions.SetDefault(id, ctrl)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctrl
}

type pageView struct {
	Query   string
	Filter  string
	Notice  string
	Error   string
	Started bool
	Results template.HTML
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	st := ctrl.Snapshot()
	// Notices show once.
	ctrl.DismissNotice()

	frag, err := render.HTMLFragment(st.Displayed, s.cfg.Render)
	if err != nil {
		s.log.WithError(err).Error("rendering results")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view := pageView{
		Query:   st.Query,
		Filter:  st.Filter,
		Notice:  st.Notice,
		Started: st.Phase == controller.Displaying,
		Results: frag,
	}
	if st.Err != nil {
		view.Error = st.Err.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.ExecuteTemplate(w, "page", view); err != nil {
		s.log.WithError(err).Error("rendering page")
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	// The outcome, including an empty-query notice or a failure, is kept
	// in the session state and shown by the page.
	_ = ctrl.Search(r.Context(), r.URL.Query().Get("q"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	ctrl.Filter(r.URL.Query().Get("term"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	if err := ctrl.Retry(r.Context()); errors.Is(err, controller.ErrNoPreviousQuery) {
		s.log.Debug("retry without a previous search")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// apiResults is the JSON body of GET /api/results.
type apiResults struct {
	Query   string               `json:"query"`
	Filter  string               `json:"filter"`
	Results []types.SearchResult `json:"results"`
	Notice  string               `json:"notice,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func (s *Server) handleAPIResults(w http.ResponseWriter, r *http.Request) {
	st := s.session(w, r).Snapshot()
	body := apiResults{
		Query:   st.Query,
		Filter:  st.Filter,
		Results: st.Displayed,
		Notice:  st.Notice,
	}
	if st.Err != nil {
		body.Error = st.Err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Error("encoding API response")
	}
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

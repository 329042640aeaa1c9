// Package server exposes hadiths, narrators and chain diagrams over HTTP.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mki/isnad/pkg/buildinfo"
	"github.com/mki/isnad/pkg/config"
	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/chain"
	"github.com/mki/isnad/pkg/pipeline"
	"github.com/mki/isnad/pkg/repository"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// Locale and PivotMarker are used when a request does not name them.
	Locale      string
	PivotMarker string
	Logger      *log.Logger
}

// Server is the HTTP API. It is an http.Handler.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
}

// New builds the router around runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Locale == "" {
		opts.Locale = string(isnad.DefaultLocale)
	}
	s := &Server{
		router: chi.NewRouter(),
		runner: runner,
		opts:   opts,
		logger: opts.Logger,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(requestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/hadiths", s.listHadiths)
		r.Get("/hadiths/{id}", s.getHadith)
		r.Get("/hadiths/{id}/graph", s.getGraph)
		r.Get("/hadiths/{id}/graph.{format}", s.getGraphArtifact)
		r.Get("/narrators", s.searchNarrators)
		r.Get("/narrators/{index}", s.getNarrator)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) listHadiths(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"), 1, errors.ErrCodeInvalidPage)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	size, err := intParam(q.Get("size"), repository.DefaultPageSize, errors.ErrCodeInvalidPage)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.runner.Hadiths.GetPaginated(r.Context(), page, size, q.Get("source"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) getHadith(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h, err := s.runner.Hadiths.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if h == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeHadithNotFound, "hadith %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// graphResponse is the body of GET /api/hadiths/{id}/graph.
type graphResponse struct {
	HadithID     string          `json:"hadithId"`
	Diagram      graph.Diagram   `json:"diagram"`
	CommonLink   *isnad.Narrator `json:"commonLink,omitempty"`
	Gaps         []chain.Gap     `json:"gaps,omitempty"`
	RemovedEdges []graph.Edge    `json:"removedEdges,omitempty"`
	Empty        bool            `json:"empty"`
	Cached       bool            `json:"cached"`
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	res, err := s.runner.Chain(r.Context(), chi.URLParam(r, "id"), s.options(r, nil))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{
		HadithID:     res.Hadith.ID,
		Diagram:      res.Diagram,
		CommonLink:   res.CommonLink,
		Gaps:         res.Gaps,
		RemovedEdges: res.RemovedEdges,
		Empty:        res.Empty,
		Cached:       res.CacheInfo.DiagramHit,
	})
}

func (s *Server) getGraphArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), chi.URLParam(r, "id"), s.options(r, []string{format}))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) searchNarrators(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"), repository.DefaultSearchLimit, errors.ErrCodeInvalidQuery)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ns, err := s.runner.Narrators.Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ns == nil {
		ns = []isnad.Narrator{}
	}
	writeJSON(w, http.StatusOK, ns)
}

func (s *Server) getNarrator(w http.ResponseWriter, r *http.Request) {
	index, err := errors.ParseIndex(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := s.runner.Narrators.GetByIndex(r.Context(), index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if n == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNarratorNotFound, "narrator %d not found", index))
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// options reads locale, pivot and detailed from the query string.
func (s *Server) options(r *http.Request, formats []string) pipeline.Options {
	q := r.URL.Query()
	opts := pipeline.Options{
		Locale:      s.opts.Locale,
		PivotMarker: s.opts.PivotMarker,
		Formats:     formats,
		Detailed:    q.Get("detailed") == "true",
		Logger:      s.logger.With("request_id", RequestIDFrom(r.Context())),
	}
	if l := q.Get("locale"); l != "" {
		opts.Locale = l
	}
	if p := q.Get("pivot"); p != "" {
		opts.PivotMarker = p
	}
	return opts
}

func intParam(v string, def int, code errors.Code) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(code, "%q is not a number", v)
	}
	return n, nil
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	body := errorResponse{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if body.Code == "" {
		body.Code = errors.ErrCodeInternal
	}

	logger := s.logger.With("request_id", RequestIDFrom(r.Context()), "status", status)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		if body.Code == errors.ErrCodeInternal {
			body.Message = "internal error"
		}
	} else {
		logger.Debug("request rejected", "error", err)
	}
	writeJSON(w, status, body)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/transdom/site-edge/internal/domain"
	"github.com/transdom/site-edge/internal/imgopt"
	"github.com/transdom/site-edge/internal/render"
	"github.com/transdom/site-edge/internal/storage"
)

type Server struct {
	cfg     *Config
	store   storage.Storage
	resizer *imgopt.Resizer
	reg     *prometheus.Registry
	metrics *metrics
	getenv  func(string) string
	now     func() time.Time
	http    *http.Server
}

type Option func(*Server)

// WithEnv replaces os.Getenv as the source of the site URL override.
func WithEnv(getenv func(string) string) Option { return func(s *Server) { s.getenv = getenv } }

func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

func NewServer(cfg *Config, st storage.Storage, opts ...Option) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:     cfg,
		store:   st,
		resizer: imgopt.NewResizer(st, cfg.Static.Dir, cfg.Build.Images),
		reg:     reg,
		metrics: newMetrics(reg),
		getenv:  os.Getenv,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) Start() error {
	s.http = &http.Server{Addr: s.cfg.Server.Bind, Handler: s.routes(), ReadHeaderTimeout: 10 * time.Second}
	log.Info().Str("bind", s.cfg.Server.Bind).Msg("starting site-edge")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Documents returns the generated documents for the current site URL.
func (s *Server) Documents() []render.Document {
	site := domain.SiteURL(s.getenv)
	return []render.Document{
		render.NewRobots(domain.Robots(site)),
		render.NewSitemap(domain.Sitemap(site, s.now())),
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "timestamp": s.now().UTC().Format(time.RFC3339)}, nil)
}

func writeJSON(w http.ResponseWriter, v any, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) { http.Error(w, msg, code) }

func (s *Server) robots(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, render.NewRobots(domain.Robots(domain.SiteURL(s.getenv))))
}

func (s *Server) sitemap(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, render.NewSitemap(domain.Sitemap(domain.SiteURL(s.getenv), s.now())))
}

func (s *Server) serveDocument(w http.ResponseWriter, d render.Document) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		log.Error().Err(err).Str("document", d.Name()).Msg("render failed")
		writeErr(w, http.StatusInternalServerError, "render failed")
		return
	}
	s.metrics.documents.WithLabelValues(d.Name()).Inc()
	w.Header().Set("Content-Type", d.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) buildConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.cfg.Build, nil)
}

func (s *Server) image(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, err := strconv.Atoi(q.Get("w"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, `"w" parameter (width) is required`)
		return
	}
	quality := imgopt.DefaultQuality
	if v := q.Get("q"); v != "" {
		if quality, err = strconv.Atoi(v); err != nil || quality < 1 || quality > 100 {
			writeErr(w, http.StatusBadRequest, `"q" parameter (quality) must be between 1 and 100`)
			return
		}
	}

	start := time.Now()
	res, err := s.resizer.Resize(r.Context(), imgopt.Request{
		Src:     q.Get("url"),
		Width:   width,
		Quality: quality,
		Accept:  r.Header.Get("Accept"),
	})
	s.metrics.resize.Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, imgopt.ErrWidthNotAllowed), errors.Is(err, imgopt.ErrInvalidSource):
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, imgopt.ErrSourceNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, imgopt.ErrSourceTooLarge):
		writeErr(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case errors.Is(err, imgopt.ErrUnsupportedSource):
		writeErr(w, http.StatusUnsupportedMediaType, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Str("url", q.Get("url")).Msg("image resize failed")
		writeErr(w, http.StatusInternalServerError, "image resize failed")
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(s.cfg.Build.Images.CacheTTL()))
	w.Header().Set("Vary", "Accept")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/transdom/site-edge/internal/auth"
)

var compressibleTypes = []string{
	"text/html", "text/css", "text/plain", "text/javascript",
	"application/javascript", "application/json", "application/xml", "image/svg+xml",
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, logger, recoverer)
	if s.cfg.Build.CompressEnabled() {
		r.Use(middleware.Compress(5, compressibleTypes...))
	}
	r.Use(httprate.LimitByIP(s.cfg.Server.RateLimit, 1*time.Minute))
	r.Use(edgeHeaders)

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	r.Get("/robots.txt", s.robots)
	r.Get("/sitemap.xml", s.sitemap)
	r.Get("/_next/image", s.image)

	r.Route("/v1", func(p chi.Router) {
		p.Use(auth.Bearer(s.cfg.Auth.Token))
		p.Get("/build-config", s.buildConfig)
	})

	r.Handle("/*", http.FileServer(http.Dir(s.cfg.Static.Dir)))
	return r
}

func (s *Server) Handler() http.Handler { return s.routes() }

package api

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type ctxKey int

const reqStartKey ctxKey = iota

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), reqStartKey, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if t, ok := r.Context().Value(reqStartKey).(time.Time); ok {
			log.Info().Str("method", r.Method).Str("path", r.URL.Path).Int("status", ww.Status()).Dur("dur", time.Since(t)).Msg("req")
		}
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

const (
	immutableCache = "public, max-age=31536000, immutable"
	pageCache      = "public, max-age=3600, stale-while-revalidate=86400"
)

var immutableExt = map[string]bool{
	".svg": true, ".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".ico": true, ".css": true, ".js": true,
}

// edgeHeaders sets cache and security headers on pages and static assets.
// Generated documents and framework asset paths are left untouched.
func edgeHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if skipEdgeHeaders(p) {
			next.ServeHTTP(w, r)
			return
		}
		h := w.Header()
		ext := strings.ToLower(path.Ext(p))
		switch {
		case immutableExt[ext]:
			h.Set("Cache-Control", immutableCache)
		case ext == ".html" || ext == ".htm" || !strings.Contains(p, "."):
			h.Set("Cache-Control", pageCache)
		}
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func skipEdgeHeaders(p string) bool {
	rest := strings.TrimPrefix(p, "/")
	for _, prefix := range []string{"_next/static", "_next/image", "favicon.ico", "sitemap.xml", "robots.txt"} {
		if strings.HasPrefix(rest, prefix) {
			return true
		}
	}
	return false
}

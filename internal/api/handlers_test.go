package api

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transdom/site-edge/internal/domain"
	"github.com/transdom/site-edge/internal/storage"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, env map[string]string, mutate func(*Config)) http.Handler {
	t.Helper()
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	cfg.Auth.Token = "secret"
	cfg.Static.Dir = t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 800, 400))))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Static.Dir, "logo.png"), buf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Static.Dir, "index.html"), []byte("<h1>home</h1>"), 0o644))

	if mutate != nil {
		mutate(cfg)
	}
	srv := NewServer(cfg, storage.NewFS(),
		WithEnv(func(k string) string { return env[k] }),
		WithClock(func() time.Time { return fixedNow }),
	)
	return srv.Handler()
}

func do(h http.Handler, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRobotsUsesSiteURL(t *testing.T) {
	h := newTestServer(t, map[string]string{"NEXT_PUBLIC_SITE_URL": "https://staging.example.com"}, nil)
	rec := do(h, http.MethodGet, "/robots.txt", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Host: https://staging.example.com\n")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://staging.example.com/sitemap.xml\n")
	assert.Empty(t, rec.Header().Get("X-Frame-Options"))
}

func TestRobotsDefaultSiteURL(t *testing.T) {
	h := newTestServer(t, nil, nil)
	first := do(h, http.MethodGet, "/robots.txt", nil)
	second := do(h, http.MethodGet, "/robots.txt", nil)

	assert.Contains(t, first.Body.String(), "Host: "+domain.DefaultSiteURL+"\n")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestSitemap(t *testing.T) {
	h := newTestServer(t, nil, nil)
	rec := do(h, http.MethodGet, "/sitemap.xml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<loc>"+domain.DefaultSiteURL+"/booking</loc>")
	assert.Contains(t, rec.Body.String(), "<lastmod>2026-10-19T09:00:00.000Z</lastmod>")
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, nil, nil)
	rec := do(h, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "2026-10-19T09:00:00Z", body["timestamp"])
}

func TestBuildConfigRequiresToken(t *testing.T) {
	h := newTestServer(t, nil, nil)

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/v1/build-config", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/v1/build-config", map[string]string{"Authorization": "Bearer wrong"}).Code)

	rec := do(h, http.MethodGet, "/v1/build-config", map[string]string{"Authorization": "Bearer secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	var b domain.BuildConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, domain.OutputStandalone, b.Output)
	assert.Equal(t, []string{"image/avif", "image/webp"}, b.Images.Formats)
	assert.Equal(t, []int{640, 750, 828, 1080, 1200, 1920, 2048, 3840}, b.Images.DeviceSizes)
	assert.True(t, b.CompressEnabled())
	assert.False(t, b.ProductionBrowserSourceMaps)
}

func TestImage(t *testing.T) {
	h := newTestServer(t, nil, nil)

	rec := do(h, http.MethodGet, "/_next/image?url=/logo.png&w=640&q=80", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 640, 320), img.Bounds())

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/_next/image?url=/logo.png&w=500", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/_next/image?url=/logo.png", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/_next/image?url=/logo.png&w=640&q=101", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/_next/image?url=logo.png&w=640", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/_next/image?url=/nope.png&w=640", nil).Code)
	assert.Equal(t, http.StatusUnsupportedMediaType, do(h, http.MethodGet, "/_next/image?url=/index.html&w=640", nil).Code)
}

func TestStaticEdgeHeaders(t *testing.T) {
	h := newTestServer(t, nil, nil)

	rec := do(h, http.MethodGet, "/logo.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, immutableCache, rec.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))

	rec = do(h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pageCache, rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "home")
}

func TestSkipEdgeHeaders(t *testing.T) {
	for _, p := range []string{"/robots.txt", "/sitemap.xml", "/favicon.ico", "/_next/static/chunk.js", "/_next/image"} {
		assert.True(t, skipEdgeHeaders(p), p)
	}
	for _, p := range []string{"/", "/about-us", "/assets/logo.png"} {
		assert.False(t, skipEdgeHeaders(p), p)
	}
}

func TestCompression(t *testing.T) {
	h := newTestServer(t, nil, nil)
	rec := do(h, http.MethodGet, "/robots.txt", map[string]string{"Accept-Encoding": "gzip"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), "User-Agent: Googlebot\n")

	rec = do(h, http.MethodGet, "/sitemap.xml", map[string]string{"Accept-Encoding": "gzip"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	zr, err = gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err = io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<loc>"+domain.DefaultSiteURL+"/faq</loc>")

	off := false
	h = newTestServer(t, nil, func(c *Config) { c.Build.Compress = &off })
	for _, p := range []string{"/robots.txt", "/sitemap.xml"} {
		rec = do(h, http.MethodGet, p, map[string]string{"Accept-Encoding": "gzip"})
		assert.Empty(t, rec.Header().Get("Content-Encoding"), p)
	}
}

func TestMetrics(t *testing.T) {
	h := newTestServer(t, nil, nil)
	do(h, http.MethodGet, "/robots.txt", nil)
	do(h, http.MethodGet, "/robots.txt", nil)
	do(h, http.MethodGet, "/sitemap.xml", nil)

	rec := do(h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `siteedge_documents_served_total{document="robots.txt"} 2`)
	assert.Contains(t, rec.Body.String(), `siteedge_documents_served_total{document="sitemap.xml"} 1`)
}

func TestImageExplicitZeroCacheTTL(t *testing.T) {
	zero := 0
	h := newTestServer(t, nil, func(c *Config) { c.Build.Images.MinimumCacheTTL = &zero })

	rec := do(h, http.MethodGet, "/_next/image?url=/logo.png&w=640", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=0", rec.Header().Get("Cache-Control"))
}

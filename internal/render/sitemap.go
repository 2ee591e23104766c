package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/transdom/site-edge/internal/domain"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	// lastmodLayout is ISO 8601 in UTC with millisecond precision.
	lastmodLayout = "2006-01-02T15:04:05.000Z07:00"
)

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type Sitemap struct{ Entries []domain.SitemapEntry }

func NewSitemap(entries []domain.SitemapEntry) *Sitemap { return &Sitemap{Entries: entries} }

func (s *Sitemap) Name() string        { return "sitemap.xml" }
func (s *Sitemap) ContentType() string { return "application/xml" }

func (s *Sitemap) Render(w io.Writer) error {
	doc := urlset{XMLNS: sitemapNS, URLs: make([]xmlURL, 0, len(s.Entries))}
	for _, e := range s.Entries {
		u := xmlURL{Loc: e.URL, ChangeFreq: string(e.ChangeFreq)}
		if !e.LastModified.IsZero() {
			u.LastMod = e.LastModified.UTC().Format(lastmodLayout)
		}
		if e.Priority > 0 {
			u.Priority = strconv.FormatFloat(e.Priority, 'f', -1, 64)
		}
		doc.URLs = append(doc.URLs, u)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

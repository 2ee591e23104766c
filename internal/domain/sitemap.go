package domain

import "time"

type page struct {
	path     string
	freq     ChangeFreq
	priority float64
}

var pages = []page{
	{"", Daily, 1.0},
	{"/about-us", Monthly, 0.8},
	{"/quotation", Weekly, 1.0},
	{"/booking", Weekly, 0.9},
	{"/contact-us", Monthly, 0.7},
	{"/faq", Monthly, 0.6},
	{"/sign-in", Monthly, 0.5},
	{"/sign-up", Monthly, 0.5},
	{"/dashboard", Weekly, 0.6},
}

// Sitemap lists the public pages of siteURL, all stamped with now.
func Sitemap(siteURL string, now time.Time) []SitemapEntry {
	out := make([]SitemapEntry, 0, len(pages))
	for _, p := range pages {
		out = append(out, SitemapEntry{
			URL:          siteURL + p.path,
			LastModified: now,
			ChangeFreq:   p.freq,
			Priority:     p.priority,
		})
	}
	return out
}

package domain

import "time"

// DefaultSiteURL is used when no SITE_URL override is present.
const DefaultSiteURL = "https://transdomlogistics.com"

type Rule struct {
	UserAgent string   `json:"userAgent"`
	Allow     string   `json:"allow"`
	Disallow  []string `json:"disallow"`
}

type Policy struct {
	Rules   []Rule `json:"rules"`
	Sitemap string `json:"sitemap"`
	Host    string `json:"host"`
}

type ChangeFreq string

const (
	Daily   ChangeFreq = "daily"
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
)

type SitemapEntry struct {
	URL          string     `json:"url"`
	LastModified time.Time  `json:"lastModified"`
	ChangeFreq   ChangeFreq `json:"changeFrequency"`
	Priority     float64    `json:"priority"`
}

type ImageConfig struct {
	Formats         []string `yaml:"formats" json:"formats"`
	DeviceSizes     []int    `yaml:"deviceSizes" json:"deviceSizes"`
	ImageSizes      []int    `yaml:"imageSizes" json:"imageSizes"`
	MinimumCacheTTL *int     `yaml:"minimumCacheTTL" json:"minimumCacheTTL"`
}

type BuildConfig struct {
	Output                      string      `yaml:"output" json:"output"`
	OutputFileTracingRoot       string      `yaml:"outputFileTracingRoot" json:"outputFileTracingRoot"`
	Images                      ImageConfig `yaml:"images" json:"images"`
	Compress                    *bool       `yaml:"compress" json:"compress"`
	ProductionBrowserSourceMaps bool        `yaml:"productionBrowserSourceMaps" json:"productionBrowserSourceMaps"`
}

// CacheTTL is the image cache lifetime in seconds. An explicit zero is kept.
func (i ImageConfig) CacheTTL() int {
	if i.MinimumCacheTTL == nil {
		return defaultMinimumCacheTTL
	}
	return *i.MinimumCacheTTL
}

// CompressEnabled reports the compress flag, which defaults to on when unset.
func (b BuildConfig) CompressEnabled() bool { return b.Compress == nil || *b.Compress }

package domain

import "os"

var privatePrefixes = []string{"/api/", "/admin/", "/dashboard/", "/payment/", "/receipt/"}

// SiteURLEnv names the site URL override. SiteURLEnvAlias is consulted only
// when SiteURLEnv is empty.
const (
	SiteURLEnv      = "NEXT_PUBLIC_SITE_URL"
	SiteURLEnvAlias = "SITE_URL"
)

// SiteURL returns the site URL override from getenv, or DefaultSiteURL when
// neither variable is set. The value is used verbatim.
func SiteURL(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, k := range []string{SiteURLEnv, SiteURLEnvAlias} {
		if u := getenv(k); u != "" {
			return u
		}
	}
	return DefaultSiteURL
}

// Robots builds the crawl policy for siteURL. Each call returns fresh slices so
// callers may not alias the shared prefix table.
func Robots(siteURL string) Policy {
	return Policy{
		Rules: []Rule{
			{
				UserAgent: "*",
				Allow:     "/",
				Disallow:  append(clone(privatePrefixes), "/_next/", "/private/"),
			},
			{UserAgent: "Googlebot", Allow: "/", Disallow: clone(privatePrefixes)},
			{UserAgent: "Bingbot", Allow: "/", Disallow: clone(privatePrefixes)},
		},
		Sitemap: siteURL + "/sitemap.xml",
		Host:    siteURL,
	}
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

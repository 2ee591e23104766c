package render

import (
	"bufio"
	"io"

	"github.com/transdom/site-edge/internal/domain"
)

type Robots struct{ Policy domain.Policy }

func NewRobots(p domain.Policy) *Robots { return &Robots{Policy: p} }

func (r *Robots) Name() string        { return "robots.txt" }
func (r *Robots) ContentType() string { return "text/plain; charset=utf-8" }

func (r *Robots) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, rule := range r.Policy.Rules {
		bw.WriteString("User-Agent: " + rule.UserAgent + "\n")
		if rule.Allow != "" {
			bw.WriteString("Allow: " + rule.Allow + "\n")
		}
		for _, d := range rule.Disallow {
			bw.WriteString("Disallow: " + d + "\n")
		}
		bw.WriteString("\n")
	}
	if r.Policy.Host != "" {
		bw.WriteString("Host: " + r.Policy.Host + "\n")
	}
	if r.Policy.Sitemap != "" {
		bw.WriteString("Sitemap: " + r.Policy.Sitemap + "\n")
	}
	return bw.Flush()
}

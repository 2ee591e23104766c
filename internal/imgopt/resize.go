// Package imgopt resizes site images to the configured breakpoint widths.
package imgopt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/munnerz/goautoneg"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/transdom/site-edge/internal/domain"
	"github.com/transdom/site-edge/internal/storage"
)

const (
	DefaultQuality = 75
	// MaxSourcePixels bounds the decoded size of a source image.
	MaxSourcePixels = 40_000_000
)

var (
	ErrWidthNotAllowed   = errors.New("width is not a configured image size")
	ErrInvalidSource     = errors.New("invalid image source")
	ErrSourceNotFound    = errors.New("image source not found")
	ErrUnsupportedSource = errors.New("unsupported image source")
	ErrSourceTooLarge    = errors.New("image source too large")
)

type encoder func(buf *bytes.Buffer, img image.Image, quality int) error

var encoders = map[string]encoder{
	"image/jpeg": func(buf *bytes.Buffer, img image.Image, q int) error {
		return jpeg.Encode(buf, img, &jpeg.Options{Quality: q})
	},
	"image/png": func(buf *bytes.Buffer, img image.Image, _ int) error {
		return png.Encode(buf, img)
	},
}

type Request struct {
	Src     string
	Width   int
	Quality int
	Accept  string
}

type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

type Resizer struct {
	store     storage.Storage
	root      string
	cfg       domain.ImageConfig
	widths    []int
	maxPixels int
}

func NewResizer(st storage.Storage, root string, cfg domain.ImageConfig) *Resizer {
	return &Resizer{store: st, root: root, cfg: cfg, widths: cfg.AllowedWidths(), maxPixels: MaxSourcePixels}
}

func (r *Resizer) Resize(ctx context.Context, req Request) (*Result, error) {
	if _, ok := slices.BinarySearch(r.widths, req.Width); !ok {
		return nil, fmt.Errorf("%w: %d", ErrWidthNotAllowed, req.Width)
	}
	q := req.Quality
	if q <= 0 || q > 100 {
		q = DefaultQuality
	}
	file, err := r.resolve(req.Src)
	if err != nil {
		return nil, err
	}
	raw, err := r.store.Read(ctx, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, req.Src)
		}
		return nil, fmt.Errorf("read %s: %w", req.Src, err)
	}
	hdr, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}
	if hdr.Width <= 0 || hdr.Height <= 0 || hdr.Width > r.maxPixels/hdr.Height {
		return nil, fmt.Errorf("%w: %dx%d", ErrSourceTooLarge, hdr.Width, hdr.Height)
	}
	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}

	out := scaleToWidth(src, req.Width)
	ct := r.negotiate(req.Accept, format)
	var buf bytes.Buffer
	if err := encoders[ct](&buf, out, q); err != nil {
		return nil, fmt.Errorf("encode %s: %w", ct, err)
	}
	b := out.Bounds()
	return &Result{Data: buf.Bytes(), ContentType: ct, Width: b.Dx(), Height: b.Dy()}, nil
}

// resolve maps a site-relative path onto the static root.
func (r *Resizer) resolve(src string) (string, error) {
	if !strings.HasPrefix(src, "/") || strings.HasPrefix(src, "//") {
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, src)
	}
	clean := path.Clean(src)
	file := filepath.Join(r.root, filepath.FromSlash(clean))
	rel, err := filepath.Rel(r.root, file)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, src)
	}
	return file, nil
}

// negotiate picks the first configured format the client names with a
// non-zero quality and that can be encoded, falling back to the source family.
func (r *Resizer) negotiate(accept, srcFormat string) string {
	accepted := make(map[string]bool)
	for _, a := range goautoneg.ParseAccept(accept) {
		if a.Q > 0 {
			accepted[a.Type+"/"+a.SubType] = true
		}
	}
	for _, f := range r.cfg.Formats {
		if _, ok := encoders[f]; ok && accepted[f] {
			return f
		}
	}
	if srcFormat == "jpeg" {
		return "image/jpeg"
	}
	return "image/png"
}

// scaleToWidth downscales preserving aspect ratio. Images already narrower
// than width are returned unchanged.
func scaleToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() <= width {
		return src
	}
	h := b.Dy() * width / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

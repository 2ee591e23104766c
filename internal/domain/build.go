package domain

import (
	"fmt"
	"os"
	"sort"
)

var (
	defaultFormats     = []string{"image/avif", "image/webp"}
	defaultDeviceSizes = []int{640, 750, 828, 1080, 1200, 1920, 2048, 3840}
	defaultImageSizes  = []int{16, 32, 48, 64, 96, 128, 256, 384}
)

const (
	OutputStandalone       = "standalone"
	defaultMinimumCacheTTL = 60
)

// DefaultBuildConfig returns the stock build descriptor rooted at the working
// directory.
func DefaultBuildConfig() (BuildConfig, error) {
	root, err := os.Getwd()
	if err != nil {
		return BuildConfig{}, fmt.Errorf("resolve output file tracing root: %w", err)
	}
	on := true
	ttl := defaultMinimumCacheTTL
	return BuildConfig{
		Output:                OutputStandalone,
		OutputFileTracingRoot: root,
		Images: ImageConfig{
			Formats:         append([]string(nil), defaultFormats...),
			DeviceSizes:     append([]int(nil), defaultDeviceSizes...),
			ImageSizes:      append([]int(nil), defaultImageSizes...),
			MinimumCacheTTL: &ttl,
		},
		Compress: &on,
	}, nil
}

// WithDefaults fills every unset field of b from DefaultBuildConfig.
func (b BuildConfig) WithDefaults() (BuildConfig, error) {
	d, err := DefaultBuildConfig()
	if err != nil {
		return BuildConfig{}, err
	}
	if b.Output == "" {
		b.Output = d.Output
	}
	if b.OutputFileTracingRoot == "" {
		b.OutputFileTracingRoot = d.OutputFileTracingRoot
	}
	if len(b.Images.Formats) == 0 {
		b.Images.Formats = d.Images.Formats
	}
	if len(b.Images.DeviceSizes) == 0 {
		b.Images.DeviceSizes = d.Images.DeviceSizes
	}
	if len(b.Images.ImageSizes) == 0 {
		b.Images.ImageSizes = d.Images.ImageSizes
	}
	if b.Images.MinimumCacheTTL == nil {
		b.Images.MinimumCacheTTL = d.Images.MinimumCacheTTL
	}
	if b.Compress == nil {
		b.Compress = d.Compress
	}
	return b, nil
}

// AllowedWidths is the sorted union of device and image sizes.
func (i ImageConfig) AllowedWidths() []int {
	seen := make(map[int]struct{}, len(i.DeviceSizes)+len(i.ImageSizes))
	var out []int
	for _, w := range append(append([]int(nil), i.ImageSizes...), i.DeviceSizes...) {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Ints(out)
	return out
}

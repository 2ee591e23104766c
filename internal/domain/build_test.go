package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults(t *testing.T) BuildConfig {
	t.Helper()
	b, err := DefaultBuildConfig()
	require.NoError(t, err)
	return b
}

func TestDefaultBuildConfig(t *testing.T) {
	b := defaults(t)
	assert.Equal(t, OutputStandalone, b.Output)
	assert.NotEmpty(t, b.OutputFileTracingRoot)
	assert.Equal(t, []string{"image/avif", "image/webp"}, b.Images.Formats)
	assert.Equal(t, []int{640, 750, 828, 1080, 1200, 1920, 2048, 3840}, b.Images.DeviceSizes)
	assert.Equal(t, []int{16, 32, 48, 64, 96, 128, 256, 384}, b.Images.ImageSizes)
	assert.Equal(t, 60, b.Images.CacheTTL())
	assert.True(t, b.CompressEnabled())
	assert.False(t, b.ProductionBrowserSourceMaps)
	require.NoError(t, b.Validate())

	assert.Equal(t, defaults(t), b)
}

func TestDefaultBuildConfigIsNotShared(t *testing.T) {
	b := defaults(t)
	b.Images.DeviceSizes[0] = 1
	*b.Images.MinimumCacheTTL = 5
	again := defaults(t)
	assert.Equal(t, 640, again.Images.DeviceSizes[0])
	assert.Equal(t, 60, again.Images.CacheTTL())
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	off := false
	zero := 0
	b, err := BuildConfig{
		OutputFileTracingRoot: "/srv/site",
		Images:                ImageConfig{DeviceSizes: []int{320, 640}, MinimumCacheTTL: &zero},
		Compress:              &off,
	}.WithDefaults()
	require.NoError(t, err)

	assert.Equal(t, OutputStandalone, b.Output)
	assert.Equal(t, "/srv/site", b.OutputFileTracingRoot)
	assert.Equal(t, []int{320, 640}, b.Images.DeviceSizes)
	assert.Equal(t, []int{16, 32, 48, 64, 96, 128, 256, 384}, b.Images.ImageSizes)
	assert.Equal(t, 0, b.Images.CacheTTL())
	assert.False(t, b.CompressEnabled())
	require.NoError(t, b.Validate())
}

func TestCacheTTLUnset(t *testing.T) {
	assert.Equal(t, 60, ImageConfig{}.CacheTTL())
}

func TestAllowedWidths(t *testing.T) {
	i := ImageConfig{DeviceSizes: []int{640, 384}, ImageSizes: []int{16, 384}}
	assert.Equal(t, []int{16, 384, 640}, i.AllowedWidths())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*BuildConfig){
		"output": func(b *BuildConfig) { b.Output = "server" },
		"format": func(b *BuildConfig) { b.Images.Formats = []string{"webp"} },
		"size":   func(b *BuildConfig) { b.Images.DeviceSizes = []int{0} },
		"ttl":    func(b *BuildConfig) { ttl := -1; b.Images.MinimumCacheTTL = &ttl },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			b := defaults(t)
			mutate(&b)
			assert.ErrorIs(t, b.Validate(), ErrInvalidBuildConfig)
		})
	}
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidBuildConfig = errors.New("invalid build config")

// Validate checks the descriptor after defaults have been applied.
func (b BuildConfig) Validate() error {
	if b.Output != OutputStandalone && b.Output != "export" {
		return fmt.Errorf("%w: unknown output mode %q", ErrInvalidBuildConfig, b.Output)
	}
	for _, f := range b.Images.Formats {
		if !strings.HasPrefix(f, "image/") {
			return fmt.Errorf("%w: image format %q is not a media type", ErrInvalidBuildConfig, f)
		}
	}
	for _, sizes := range [][]int{b.Images.DeviceSizes, b.Images.ImageSizes} {
		for _, w := range sizes {
			if w <= 0 {
				return fmt.Errorf("%w: image size %d must be positive", ErrInvalidBuildConfig, w)
			}
		}
	}
	if b.Images.CacheTTL() < 0 {
		return fmt.Errorf("%w: negative minimumCacheTTL", ErrInvalidBuildConfig)
	}
	return nil
}

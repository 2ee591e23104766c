package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/transdom/site-edge/internal/render"
	"github.com/transdom/site-edge/internal/storage"
)

// RunExport renders each document and writes it into dir under its own name.
func RunExport(ctx context.Context, st storage.Storage, dir string, docs ...render.Document) error {
	if err := st.MkdirAll(ctx, dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, d := range docs {
		var buf bytes.Buffer
		if err := d.Render(&buf); err != nil {
			return fmt.Errorf("export %s: %w", d.Name(), err)
		}
		path := filepath.Join(dir, d.Name())
		if err := st.WriteAtomic(ctx, path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("export %s: %w", d.Name(), err)
		}
		log.Info().Str("path", path).Int("bytes", buf.Len()).Msg("exported")
	}
	return nil
}

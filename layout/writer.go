package layout

import (
	"context"

	"github.com/spf13/afero"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/knitwit/errors"
)

// RenderFunc turns a package into WIT source text.
type RenderFunc func(*wit.Package) string

// Written describes one file produced by Writer.
type Written struct {
	Placement
	Bytes int
}

// Writer writes planned packages to a filesystem.
type Writer struct {
	fs     afero.Fs
	render RenderFunc
	logger *zap.Logger
}

// NewWriter creates a writer over fs. A nil logger disables logging.
func NewWriter(fs afero.Fs, render RenderFunc, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{fs: fs, render: render, logger: logger}
}

// Write renders and writes every placement in order. Directories are created
// as needed; files are always overwritten. The first failure stops the run.
func (w *Writer) Write(ctx context.Context, root string, placements []Placement) ([]Written, error) {
	if err := w.fs.MkdirAll(root, 0o755); err != nil {
		return nil, errors.WriteFailed(root, "create directory", err)
	}

	written := make([]Written, 0, len(placements))
	for _, pl := range placements {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := w.fs.MkdirAll(pl.Dir, 0o755); err != nil {
			return written, errors.WriteFailed(pl.Dir, "create directory", err)
		}
		out := []byte(w.render(pl.Package))
		if err := afero.WriteFile(w.fs, pl.File, out, 0o644); err != nil {
			return written, errors.WriteFailed(pl.File, "write file", err)
		}
		w.logger.Debug("wrote package",
			zap.String("package", pl.Name.String()),
			zap.String("path", pl.File),
			zap.Int("bytes", len(out)))
		written = append(written, Written{Placement: pl, Bytes: len(out)})
	}
	return written, nil
}

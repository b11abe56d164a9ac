package witgraph

import (
	"context"
	"regexp"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/knitwit/errors"
)

// OutputNamespace and OutputPackage name the synthetic package that holds
// the combined world.
const (
	OutputNamespace = "knitwit"
	OutputPackage   = "combined"
)

var identRE = regexp.MustCompile(`^%?([a-z][a-z0-9]*|[A-Z][A-Z0-9]*)(-([a-z][a-z0-9]*|[A-Z][A-Z0-9]*))*$`)

// ValidIdent reports whether s is a valid WIT identifier.
func ValidIdent(s string) bool {
	return identRE.MatchString(s)
}

// Load parses a WIT file, a WIT directory (with an optional deps/ folder)
// or a component binary into a fresh document graph.
func Load(ctx context.Context, path string) (*wit.Resolve, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := wit.LoadWIT(path)
	if err != nil {
		return nil, errors.ParseFailed(path, err)
	}
	Logger().Debug("loaded WIT source",
		zap.String("path", path),
		zap.Int("packages", len(res.Packages)),
		zap.Int("worlds", len(res.Worlds)))
	return res, nil
}

// NewOutput returns a graph holding only the knitwit:combined package with
// one empty world called name. The world is the destination for every
// subsequent merge.
func NewOutput(name string) (*wit.Resolve, *wit.Package, *wit.World, error) {
	if !ValidIdent(name) {
		return nil, nil, nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Entity("world " + name).
			Detail("%q is not a valid WIT identifier", name).
			Build()
	}
	pkg := &wit.Package{
		Name: wit.Ident{Namespace: OutputNamespace, Package: OutputPackage},
	}
	w := &wit.World{
		Name:    name,
		Package: pkg,
	}
	pkg.Worlds.Set(name, w)
	res := &wit.Resolve{
		Packages: []*wit.Package{pkg},
		Worlds:   []*wit.World{w},
	}
	return res, pkg, w, nil
}

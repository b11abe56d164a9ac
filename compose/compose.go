package compose

import (
	"context"

	"go.bytecodealliance.org/wit"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/knitwit/errors"
	"github.com/wippyai/knitwit/witgraph"
)

// Loader parses one WIT source into its own document graph.
type Loader interface {
	Load(ctx context.Context, path string) (*wit.Resolve, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*wit.Resolve, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) (*wit.Resolve, error) {
	return f(ctx, path)
}

// DefaultLoader parses sources with the WIT resolver.
var DefaultLoader Loader = LoaderFunc(witgraph.Load)

// Options describes one composition.
type Options struct {
	Target  string   // name of the output world
	Sources []string // WIT files, directories or components, merged in order
	Worlds  []string // auxiliary worlds folded into the output world, in order
}

// Result is a finished composition.
type Result struct {
	Resolve *wit.Resolve
	Main    *wit.Package
	World   *wit.World
}

// Composer runs compositions with a given loader.
type Composer struct {
	loader Loader
	logger *zap.Logger
}

// New creates a composer. A nil loader uses DefaultLoader; a nil logger
// disables logging.
func New(loader Loader, logger *zap.Logger) *Composer {
	if loader == nil {
		loader = DefaultLoader
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{loader: loader, logger: logger}
}

// Compose builds the combined graph described by opts.
func (c *Composer) Compose(ctx context.Context, opts Options) (*Result, error) {
	res, main, err := c.Merge(ctx, opts.Target, opts.Sources)
	if err != nil {
		return nil, err
	}
	world, err := c.Fold(res, opts.Target, opts.Worlds)
	if err != nil {
		return nil, err
	}
	return &Result{Resolve: res, Main: main, World: world}, nil
}

// Merge seeds the output graph and merges every source into it, without
// folding any auxiliary world.
func (c *Composer) Merge(ctx context.Context, target string, sources []string) (*wit.Resolve, *wit.Package, error) {
	if target == "" {
		return nil, nil, errors.InvalidInput(errors.PhaseConfig, "output world name is required")
	}
	res, main, _, err := witgraph.NewOutput(target)
	if err != nil {
		return nil, nil, err
	}

	for _, path := range sources {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		src, err := c.loader.Load(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		if err := witgraph.Merge(res, src); err != nil {
			return nil, nil, errors.New(errors.PhaseMerge, errors.KindConflict).
				File(path).
				Detail("merge WIT source").
				Cause(err).
				Build()
		}
		c.logger.Info("merged WIT source",
			zap.String("path", path),
			zap.Int("packages", len(res.Packages)))
	}
	return res, main, nil
}

// Fold resolves the target world and merges each auxiliary world into it in
// the given order. Every unknown name is reported before anything is merged.
func (c *Composer) Fold(res *wit.Resolve, target string, worlds []string) (*wit.World, error) {
	into, err := witgraph.FindWorld(res, target)
	if err != nil {
		return nil, err
	}

	var missing error
	from := make([]*wit.World, 0, len(worlds))
	for _, name := range worlds {
		w, err := witgraph.FindWorld(res, name)
		if err != nil {
			missing = multierr.Append(missing, err)
			continue
		}
		from = append(from, w)
	}
	if missing != nil {
		return nil, missing
	}

	for _, w := range from {
		if err := witgraph.MergeWorld(w, into); err != nil {
			return nil, errors.New(errors.PhaseMerge, errors.KindConflict).
				Entity("world " + witgraph.WorldID(w)).
				Detail("unable to merge with world %q", w.Name).
				Cause(err).
				Build()
		}
		c.logger.Info("folded world",
			zap.String("world", witgraph.WorldID(w)),
			zap.String("into", witgraph.WorldID(into)))
	}
	return into, nil
}

// Worlds lists the qualified names of every world in res outside main, in
// graph order.
func Worlds(res *wit.Resolve, main *wit.Package) []string {
	names := make([]string, 0, len(res.Worlds))
	for _, w := range res.Worlds {
		if w.Package == main {
			continue
		}
		names = append(names, witgraph.WorldID(w))
	}
	return names
}

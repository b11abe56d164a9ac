// Package cli implements the knitwit command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/knitwit/compose"
	"github.com/wippyai/knitwit/errors"
	"github.com/wippyai/knitwit/layout"
	"github.com/wippyai/knitwit/manifest"
	"github.com/wippyai/knitwit/witgraph"
)

// DefaultOutputDir is used when --output-dir is not given.
const DefaultOutputDir = "combined_wit"

// Options holds the resolved command line.
type Options struct {
	OutputWorld string
	WitPaths    []string
	Worlds      []string
	OutputDir   string
	Manifests   []string
	Interactive bool
	DryRun      bool
	LogLevel    string
	Verbose     bool
	Config      string
}

// PickFunc asks the user to choose auxiliary worlds from candidates.
type PickFunc func(ctx context.Context, target string, candidates, preset []string) ([]string, error)

// App carries everything a run touches outside the document graph.
type App struct {
	Fs       afero.Fs
	Stdout   io.Writer
	Stderr   io.Writer
	Loader   compose.Loader
	Pick     PickFunc
	Terminal func() bool
}

// New returns an App wired to the real filesystem, terminal and WIT parser.
func New() *App {
	return &App{
		Fs:       afero.NewOsFs(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Loader:   compose.DefaultLoader,
		Pick:     runPicker,
		Terminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
	}
}

// RootCommand builds the knitwit command.
func (a *App) RootCommand() *cobra.Command {
	opts := &Options{OutputDir: DefaultOutputDir, LogLevel: "info"}
	cmd := &cobra.Command{
		Use:   "knitwit",
		Short: "Combine WIT worlds into one world and lay out its packages",
		Long: `knitwit merges WIT sources into one document graph, folds the imports and
exports of the selected worlds into a new output world, and writes every
package of the result as WIT text under the output directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindConfig(cmd, a.Fs, opts.Config)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Run(cmd.Context(), *opts)
		},
	}
	cmd.Example = `  # Combine two worlds from the wasi packages into "app"
  knitwit --output-world app --wit-path wit/ --world wasi:cli/command --world proxy

  # Read WIT sources from a componentizejs.json manifest
  knitwit --output-world app --manifest componentizejs.json -i`

	f := cmd.Flags()
	f.StringVar(&opts.OutputWorld, "output-world", "", "Name of the combined world")
	f.StringArrayVar(&opts.WitPaths, "wit-path", nil, "WIT file, directory or component to merge (repeatable)")
	f.StringArrayVar(&opts.Worlds, "world", nil, "World to fold into the output world (repeatable)")
	f.StringVar(&opts.OutputDir, "output-dir", opts.OutputDir, "Directory receiving main.wit and deps/")
	f.StringArrayVar(&opts.Manifests, "manifest", nil, "componentizejs.json manifest listing WIT sources (repeatable)")
	f.BoolVarP(&opts.Interactive, "interactive", "i", false, "Pick worlds from the merged sources in a terminal UI")
	f.BoolVar(&opts.DryRun, "dry-run", false, "Print the output layout without writing files")
	f.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	f.StringVar(&opts.Config, "config", "", "Config file (default knitwit.{yaml,toml,json} in . or $XDG_CONFIG_HOME/knitwit)")
	return cmd
}

// Run performs one composition and writes its output.
func (a *App) Run(ctx context.Context, opts Options) error {
	if opts.OutputWorld == "" {
		return errors.InvalidInput(errors.PhaseConfig, "--output-world is required")
	}
	level := opts.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, err := buildLogger(a.Stderr, level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	witgraph.SetLogger(logger.Named("witgraph"))

	sources := append([]string(nil), opts.WitPaths...)
	fromManifests, err := manifest.Sources(a.Fs, opts.Manifests)
	if err != nil {
		return err
	}
	sources = append(sources, fromManifests...)
	logger.Debug("resolved sources", zap.Strings("sources", sources))

	composer := compose.New(a.Loader, logger.Named("compose"))
	res, main, err := composer.Merge(ctx, opts.OutputWorld, sources)
	if err != nil {
		return err
	}

	worlds := opts.Worlds
	if opts.Interactive {
		if a.Terminal == nil || !a.Terminal() {
			return errors.InvalidInput(errors.PhaseConfig, "--interactive requires a terminal")
		}
		worlds, err = a.Pick(ctx, opts.OutputWorld, compose.Worlds(res, main), opts.Worlds)
		if err != nil {
			return err
		}
	}

	world, err := composer.Fold(res, opts.OutputWorld, worlds)
	if err != nil {
		return err
	}

	witgraph.StripDocs(res)
	placements, err := layout.Plan(res, main, opts.OutputDir)
	if err != nil {
		return err
	}

	if opts.DryRun {
		printPlan(a.Stdout, world, placements)
		return nil
	}

	written, err := layout.NewWriter(a.Fs, witgraph.Render, logger.Named("layout")).Write(ctx, opts.OutputDir, placements)
	if err != nil {
		return err
	}
	printSummary(a.Stdout, world, worlds, written)
	return nil
}

// Execute runs the root command with ctx and reports any error on stderr.
func (a *App) Execute(ctx context.Context, args []string) error {
	cmd := a.RootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %s\n", err)
	}
	return err
}

// Package knitwit combines WebAssembly Interface Type (WIT) worlds.
//
// knitwit merges any number of WIT sources into one document graph, creates a
// fresh output world in the synthetic package knitwit:combined, folds the
// imports and exports of selected worlds into it, and writes every package of
// the result back out as WIT text.
//
// # Architecture Overview
//
//	knitwit/
//	├── witgraph/        Load, merge and render WIT document graphs
//	├── compose/         Build the output world from sources and worlds
//	├── layout/          Collision-free package naming and file output
//	├── manifest/        componentizejs.json source lists
//	├── errors/          Structured error types
//	├── internal/cli/    Command line, config binding and world picker
//	└── cmd/knitwit/     Binary entry point
//
// # Output Layout
//
// The package holding the output world is written to <output-dir>/main.wit.
// Every other package goes to <output-dir>/deps/<identifier>/main.wit, where
// the identifier is the shortest unambiguous form of the package name:
//
//	name[-version]             name unique among dependencies
//	namespace:name             name shared, namespace unique for it
//	namespace:name[@version]   otherwise
//
// # Quick Start
//
//	knitwit --output-world app \
//	    --wit-path wit/ \
//	    --world wasi:http/proxy \
//	    --world command
//
// Programmatic use:
//
//	res, err := compose.New(nil, logger).Compose(ctx, compose.Options{
//	    Target:  "app",
//	    Sources: []string{"wit/"},
//	    Worlds:  []string{"proxy"},
//	})
//	if err != nil {
//	    return err
//	}
//	witgraph.StripDocs(res.Resolve)
//	placements, err := layout.Plan(res.Resolve, res.Main, "combined_wit")
package knitwit

// Package witgraph is the boundary between knitwit and the WIT resolver.
//
// Parsing and printing come from go.bytecodealliance.org/wit. That library
// models a document graph (wit.Resolve) but cannot combine two of them, so
// this package adds the merge operations on top of its types.
//
// # Operations
//
//	Load        parse a WIT file, directory or component binary
//	NewOutput   seed a graph with the synthetic knitwit:combined package
//	Merge       fold one graph into another, unifying identical definitions
//	MergeWorld  copy one world's imports and exports into another
//	FindWorld   exact-name world lookup with a not-found error
//	StripDocs   drop documentation comments before rendering
//	Render      print one package back to WIT text
//
// # Merge Semantics
//
// Packages are matched by identifier (namespace, name, version). Inside a
// matched package, interfaces and worlds are matched by name and must have
// the same members; a mismatch is a conflict error. Everything unmatched is
// moved into the destination and its references are rewritten to point at
// the unified definitions.
//
// World items that reference named interfaces are keyed by the parser with
// names local to one graph ("interface-0"), so they are always matched by
// the interface they resolve to. MergeWorld re-keys them by qualified name.
//
// The source graph must not be used after it has been merged.
package witgraph

// Package compose builds the combined document graph.
//
// A run seeds a graph with the synthetic knitwit:combined package holding one
// empty world, merges every WIT source into it in order, then folds the
// imports and exports of each requested auxiliary world into that world.
//
// Any parse failure, merge conflict or unknown world name aborts the run; a
// Result is only returned when every step succeeded.
package compose

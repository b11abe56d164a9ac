// Package errors provides structured error types for knitwit.
//
// Errors are categorized by Phase (where in the run the error occurred) and
// Kind (error category). The Error type carries the WIT entity involved, the
// filesystem path when one applies, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMerge, errors.KindConflict).
//		Entity("interface wasi:io/streams").
//		Path("types", "input-stream").
//		Detail("type is missing from the destination interface").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.WorldNotFound("missing-world")
//	err := errors.WriteFailed(path, "write file", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in a run the error occurred
type Phase string

const (
	PhaseConfig Phase = "config" // flags, config files, manifests
	PhaseParse  Phase = "parse"  // WIT source parsing
	PhaseMerge  Phase = "merge"  // graph and world merging
	PhaseLookup Phase = "lookup" // world resolution by name
	PhaseLayout Phase = "layout" // placement planning
	PhaseWrite  Phase = "write"  // directory and file output
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData  Kind = "invalid_data"
	KindInvalidInput Kind = "invalid_input"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindIO           Kind = "io"
	KindUnsupported  Kind = "unsupported"
)

// Error is the structured error type used throughout knitwit
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Entity string // WIT entity, e.g. "world app" or "package wasi:io@0.2.0"
	File   string // filesystem path
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.File != "" {
		b.WriteString(" (")
		b.WriteString(e.File)
		b.WriteByte(')')
	}

	if e.Entity != "" {
		b.WriteString(": ")
		b.WriteString(e.Entity)
	}

	if e.Detail != "" {
		if e.Entity != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the item path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Entity sets the WIT entity description
func (b *Builder) Entity(entity string) *Builder {
	b.err.Entity = entity
	return b
}

// File sets the filesystem path
func (b *Builder) File(path string) *Builder {
	b.err.File = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// ParseFailed creates a parse error for a WIT source
func ParseFailed(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		File:   path,
		Detail: "parse WIT source",
		Cause:  cause,
	}
}

// Conflict creates a merge conflict error for a WIT entity
func Conflict(entity, detail string) *Error {
	return &Error{
		Phase:  PhaseMerge,
		Kind:   KindConflict,
		Entity: entity,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// WorldNotFound creates a lookup error naming the missing world
func WorldNotFound(name string) *Error {
	return NotFound(PhaseLookup, "world", name)
}

// WriteFailed creates an I/O error carrying the offending path
func WriteFailed(path, detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindIO,
		File:   path,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

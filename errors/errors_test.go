package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseMerge,
				Kind:   KindConflict,
				Path:   []string{"imports", "wasi:io/streams"},
				Entity: "world app",
				Detail: "import differs",
			},
			contains: []string{"[merge]", "conflict", "imports.wasi:io/streams", "world app", "import differs"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLookup,
				Kind:  KindNotFound,
			},
			contains: []string{"[lookup]", "not_found"},
		},
		{
			name: "error with file and cause",
			err: &Error{
				Phase:  PhaseWrite,
				Kind:   KindIO,
				File:   "out/deps/io/main.wit",
				Detail: "write file",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[write]", "io", "out/deps/io/main.wit", "write file", "caused by", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseMerge,
		Kind:   KindConflict,
		Entity: "package a:b",
	}

	if !err.Is(&Error{Phase: PhaseMerge, Kind: KindConflict}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseParse, Kind: KindConflict}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseMerge, Kind: KindNotFound}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseMerge, Kind: KindConflict}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseMerge, KindConflict).
		Path("types", "error").
		Entity("interface wasi:io/error").
		File("a.wit").
		Cause(cause).
		Detail("expected %s, got %s", "record", "variant").
		Build()

	if err.Phase != PhaseMerge {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseMerge)
	}
	if err.Kind != KindConflict {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConflict)
	}
	if len(err.Path) != 2 || err.Path[0] != "types" || err.Path[1] != "error" {
		t.Errorf("Path = %v, want [types error]", err.Path)
	}
	if err.Entity != "interface wasi:io/error" {
		t.Errorf("Entity = %v, want 'interface wasi:io/error'", err.Entity)
	}
	if err.File != "a.wit" {
		t.Errorf("File = %v, want 'a.wit'", err.File)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected record, got variant" {
		t.Errorf("Detail = %v, want 'expected record, got variant'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("ParseFailed", func(t *testing.T) {
		cause := errors.New("unexpected token")
		err := ParseFailed("a.wit", cause)
		if err.Phase != PhaseParse || err.Kind != KindInvalidData {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if err.File != "a.wit" {
			t.Errorf("File = %v, want a.wit", err.File)
		}
		if !errors.Is(err, cause) {
			t.Error("ParseFailed should wrap its cause")
		}
	})

	t.Run("Conflict", func(t *testing.T) {
		err := Conflict("world app", "export differs")
		if err.Kind != KindConflict {
			t.Errorf("Kind = %v, want %v", err.Kind, KindConflict)
		}
	})

	t.Run("WorldNotFound", func(t *testing.T) {
		err := WorldNotFound("missing-world")
		if err.Phase != PhaseLookup || err.Kind != KindNotFound {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if !strings.Contains(err.Error(), `"missing-world"`) {
			t.Errorf("error %q should name the world", err.Error())
		}
	})

	t.Run("WriteFailed", func(t *testing.T) {
		err := WriteFailed("out/main.wit", "write file", errors.New("denied"))
		if err.Kind != KindIO {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIO)
		}
		if !strings.Contains(err.Error(), "out/main.wit") {
			t.Errorf("error %q should contain path", err.Error())
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseConfig, "--output-world is required")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseMerge, "world item kind")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseConfig, KindInvalidInput, cause, "read config")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep cause")
		}
	})
}

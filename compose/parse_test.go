package compose

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/wippyai/knitwit/errors"
	"github.com/wippyai/knitwit/witgraph"
)

func fixture(name string) string {
	return filepath.Join("..", "testdata", "wit", name)
}

func TestCompose_ParsedSources(t *testing.T) {
	result, err := New(nil, nil).Compose(context.Background(), Options{
		Target:  "app",
		Sources: []string{fixture("a.wit"), fixture("b.wit"), fixture("shared")},
		Worlds:  []string{"wa", "wb", "combo"},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if n := len(result.Resolve.Packages); n != 5 {
		t.Errorf("packages = %d, want 5", n)
	}
	var exports []string
	for key := range result.World.Exports.All() {
		exports = append(exports, key)
	}
	if strings.Join(exports, " ") != "ns1:pkgx/api ns2:pkgx/other" {
		t.Errorf("exports = %v", exports)
	}
	if _, ok := result.World.Imports.GetOK("ns0:first/base"); !ok {
		t.Error("combo import ns0:first/base should be folded in")
	}
	if got := witgraph.WorldID(result.World); got != "knitwit:combined/app" {
		t.Errorf("world = %s", got)
	}
}

func TestCompose_ParsedMissingWorld(t *testing.T) {
	_, err := New(nil, nil).Compose(context.Background(), Options{
		Target:  "app",
		Sources: []string{fixture("a.wit")},
		Worlds:  []string{"wa", "missing-world"},
	})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLookup, Kind: errors.KindNotFound}) {
		t.Fatalf("error = %v, want not found", err)
	}
	if len(multierr.Errors(err)) != 1 || !strings.Contains(err.Error(), "missing-world") {
		t.Errorf("error %q should name only missing-world", err)
	}
}

func TestCompose_ParsedConflict(t *testing.T) {
	_, err := New(nil, nil).Compose(context.Background(), Options{
		Target:  "app",
		Sources: []string{fixture("a.wit"), fixture("a-changed.wit")},
	})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseMerge, Kind: errors.KindConflict}) {
		t.Fatalf("error = %v, want conflict", err)
	}
	if !strings.Contains(err.Error(), "a-changed.wit") {
		t.Errorf("error %q should name the source", err)
	}
}

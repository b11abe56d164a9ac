package layout

import (
	"path/filepath"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/knitwit/errors"
)

const (
	// FileName is the name of every rendered WIT file.
	FileName = "main.wit"
	// DepsDir holds one directory per dependency package.
	DepsDir = "deps"
)

// Placement records where one package is written.
type Placement struct {
	Package *wit.Package
	Name    PackageName
	ID      string // directory identifier; empty for the main package
	Dir     string
	File    string
	Main    bool
}

// Plan computes a placement for every package in res, in graph order. main
// must be one of res.Packages.
func Plan(res *wit.Resolve, main *wit.Package, root string) ([]Placement, error) {
	if main == nil {
		return nil, errors.New(errors.PhaseLayout, errors.KindNotFound).
			Detail("no main package given").
			Build()
	}
	found := false
	var deps []PackageName
	for _, p := range res.Packages {
		if p == main {
			found = true
			continue
		}
		deps = append(deps, NameOf(p))
	}
	if !found {
		return nil, errors.New(errors.PhaseLayout, errors.KindNotFound).
			Entity("package " + main.Name.String()).
			Detail("main package is not part of the graph").
			Build()
	}

	table := NewNameTable(deps)
	placements := make([]Placement, 0, len(res.Packages))
	for _, p := range res.Packages {
		pl := Placement{Package: p, Name: NameOf(p)}
		if p == main {
			pl.Main = true
			pl.Dir = root
		} else {
			pl.ID = table.Identifier(pl.Name)
			pl.Dir = filepath.Join(root, DepsDir, pl.ID)
		}
		pl.File = filepath.Join(pl.Dir, FileName)
		placements = append(placements, pl)
	}
	return placements, nil
}

package witgraph

import (
	"iter"
	"strings"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/knitwit/errors"
)

// FindWorld returns the first world in res named name. A name of the form
// "ns:pkg/world" or "ns:pkg/world@1.2.3" must also match the owning package.
func FindWorld(res *wit.Resolve, name string) (*wit.World, error) {
	pkgID, worldName := splitWorldName(name)
	for _, w := range res.Worlds {
		if w.Name != worldName {
			continue
		}
		if pkgID != "" && PackageID(w.Package) != pkgID {
			continue
		}
		return w, nil
	}
	return nil, errors.WorldNotFound(name)
}

func splitWorldName(name string) (pkgID, world string) {
	pkg, rest, ok := strings.Cut(name, "/")
	if !ok {
		return "", name
	}
	world, version, versioned := strings.Cut(rest, "@")
	if versioned {
		pkg += "@" + version
	}
	return pkg, world
}

// MergeWorld adds every import and export of from to into, in declaration
// order.
//
// Named interfaces are matched by identity: an interface into already
// carries is skipped, and a new one is keyed by its qualified name. Other
// items (functions, types, inline interfaces) are matched by key; an equal
// item already present is skipped and a different one is a conflict.
// Interfaces that the merged interfaces depend on through `use` are then
// added as imports when into does not already carry them.
func MergeWorld(from, into *wit.World) error {
	label := "world " + WorldID(into)
	source := WorldID(from)

	added := 0
	for key, item := range from.Imports.All() {
		key, add, err := mergeKey(label, source, "imports", key, item, into.Imports.All(), into.Imports.GetOK)
		if err != nil {
			return err
		}
		if add {
			into.Imports.Set(key, item)
			added++
		}
	}
	for key, item := range from.Exports.All() {
		key, add, err := mergeKey(label, source, "exports", key, item, into.Exports.All(), into.Exports.GetOK)
		if err != nil {
			return err
		}
		if add {
			into.Exports.Set(key, item)
			added++
		}
	}

	elaborated := elaborate(into)
	Logger().Debug("merged world surface",
		zap.String("from", source),
		zap.String("into", WorldID(into)),
		zap.Int("added", added),
		zap.Int("elaborated", elaborated))
	return nil
}

// mergeKey returns the key item is stored under in into and whether it must
// be added at all.
func mergeKey(label, source, dir, key string, item wit.WorldItem, items iter.Seq2[string, wit.WorldItem], get func(string) (wit.WorldItem, bool)) (string, bool, error) {
	if ref, ok := item.(*wit.InterfaceRef); ok {
		if id := InterfaceID(ref.Interface); id != "" {
			if hasInterface(items, ref.Interface) {
				return id, false, nil
			}
			key = id
		}
	}
	add, err := checkItem(label, source, dir, key, item, get)
	return key, add, err
}

// checkItem reports whether item must be added under key. An equal item
// already present is skipped; a different one is a conflict.
func checkItem(label, source, dir, key string, item wit.WorldItem, get func(string) (wit.WorldItem, bool)) (bool, error) {
	if existing, ok := get(key); ok {
		if sameItem(existing, item) {
			return false, nil
		}
		return false, errors.New(errors.PhaseMerge, errors.KindConflict).
			Entity(label).
			Path(dir, key).
			Detail("item from world %s conflicts with prior item of the same name", source).
			Build()
	}
	return true, nil
}

func hasInterface(items iter.Seq2[string, wit.WorldItem], i *wit.Interface) bool {
	for _, item := range items {
		if ref, ok := item.(*wit.InterfaceRef); ok && ref.Interface == i {
			return true
		}
	}
	return false
}

func sameItem(a, b wit.WorldItem) bool {
	switch a := a.(type) {
	case *wit.InterfaceRef:
		b, ok := b.(*wit.InterfaceRef)
		return ok && a.Interface == b.Interface
	case *wit.TypeDef:
		b, ok := b.(*wit.TypeDef)
		return ok && (a == b || sameKind(a.Kind, b.Kind) && typeName(a) == typeName(b))
	case *wit.Function:
		b, ok := b.(*wit.Function)
		return ok && (a == b || sameSignature(a, b))
	}
	return a == b
}

// elaborate imports every interface that an imported or exported interface
// of w uses types from, transitively. It returns the number of imports added.
func elaborate(w *wit.World) int {
	present := make(map[*wit.Interface]bool)
	var queue []*wit.Interface
	for _, item := range w.Imports.All() {
		if ref, ok := item.(*wit.InterfaceRef); ok {
			present[ref.Interface] = true
			queue = append(queue, ref.Interface)
		}
	}
	for _, item := range w.Exports.All() {
		if ref, ok := item.(*wit.InterfaceRef); ok {
			present[ref.Interface] = true
			queue = append(queue, ref.Interface)
		}
	}

	added := 0
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for _, dep := range Dependencies(i) {
			if present[dep] {
				continue
			}
			present[dep] = true
			key := InterfaceID(dep)
			if key == "" {
				continue
			}
			w.Imports.Set(key, &wit.InterfaceRef{Interface: dep})
			queue = append(queue, dep)
			added++
		}
	}
	return added
}

// Dependencies returns the interfaces that i pulls types from with `use`,
// in declaration order and without duplicates.
func Dependencies(i *wit.Interface) []*wit.Interface {
	if i == nil {
		return nil
	}
	seen := make(map[*wit.Interface]bool)
	var deps []*wit.Interface
	for _, t := range i.TypeDefs.All() {
		target, ok := t.Kind.(*wit.TypeDef)
		if !ok || target == nil {
			continue
		}
		owner, ok := target.Owner.(*wit.Interface)
		if !ok || owner == i || seen[owner] {
			continue
		}
		seen[owner] = true
		deps = append(deps, owner)
	}
	return deps
}

package witgraph

import (
	"fmt"
	"iter"
	"reflect"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/knitwit/errors"
)

// Merge folds src into dst.
//
// Packages with the same identifier are unified: their interfaces and worlds
// are matched by name and must declare the same members, otherwise Merge
// returns a conflict error and dst is left untouched. Unmatched packages,
// interfaces, worlds and types are moved into dst with their references
// rewritten to the unified definitions.
func Merge(dst, src *wit.Resolve) error {
	m := newMerger(dst)
	if err := m.match(src); err != nil {
		return err
	}
	m.adopt(src)
	Logger().Debug("merged graph",
		zap.Int("unified_packages", len(m.packages)),
		zap.Int("unified_interfaces", len(m.interfaces)),
		zap.Int("unified_worlds", len(m.worlds)),
		zap.Int("packages", len(dst.Packages)))
	return nil
}

// merger maps entities of the source graph onto their counterparts in the
// destination. Anything absent from the maps is adopted as-is.
type merger struct {
	dst        *wit.Resolve
	packages   map[*wit.Package]*wit.Package
	interfaces map[*wit.Interface]*wit.Interface
	worlds     map[*wit.World]*wit.World
	types      map[*wit.TypeDef]*wit.TypeDef
}

func newMerger(dst *wit.Resolve) *merger {
	return &merger{
		dst:        dst,
		packages:   make(map[*wit.Package]*wit.Package),
		interfaces: make(map[*wit.Interface]*wit.Interface),
		worlds:     make(map[*wit.World]*wit.World),
		types:      make(map[*wit.TypeDef]*wit.TypeDef),
	}
}

func (m *merger) match(src *wit.Resolve) error {
	byID := make(map[string]*wit.Package, len(m.dst.Packages))
	for _, p := range m.dst.Packages {
		byID[PackageID(p)] = p
	}

	// Worlds may reference interfaces of any package, so they are matched
	// only after every interface is.
	type pair struct{ from, into *wit.World }
	var worlds []pair
	for _, from := range src.Packages {
		into, ok := byID[PackageID(from)]
		if !ok {
			continue
		}
		m.packages[from] = into

		for name, fi := range from.Interfaces.All() {
			if ii, ok := into.Interfaces.GetOK(name); ok {
				if err := m.matchInterface(fi, ii); err != nil {
					return err
				}
			}
		}
		for name, fw := range from.Worlds.All() {
			if iw, ok := into.Worlds.GetOK(name); ok {
				worlds = append(worlds, pair{fw, iw})
			}
		}
	}
	for _, w := range worlds {
		if err := m.matchWorld(w.from, w.into); err != nil {
			return err
		}
	}
	return nil
}

func (m *merger) matchInterface(from, into *wit.Interface) error {
	if prev, ok := m.interfaces[from]; ok {
		if prev == into {
			return nil
		}
		return errors.Conflict(interfaceLabel(from), "matched against two different interfaces")
	}
	m.interfaces[from] = into
	label := interfaceLabel(into)

	for name, ft := range from.TypeDefs.All() {
		it, ok := into.TypeDefs.GetOK(name)
		if !ok {
			return errors.New(errors.PhaseMerge, errors.KindConflict).
				Entity(label).
				Path("types", name).
				Detail("type is not present in the previously merged definition").
				Build()
		}
		if !sameKind(ft.Kind, it.Kind) {
			return errors.New(errors.PhaseMerge, errors.KindConflict).
				Entity(label).
				Path("types", name).
				Detail("type is defined as %s and %s", kindName(it.Kind), kindName(ft.Kind)).
				Build()
		}
		m.types[ft] = it
	}
	if count(from.TypeDefs.All()) != count(into.TypeDefs.All()) {
		return errors.Conflict(label, "sources declare different sets of types")
	}

	for name, ff := range from.Functions.All() {
		fi, ok := into.Functions.GetOK(name)
		if !ok {
			return errors.New(errors.PhaseMerge, errors.KindConflict).
				Entity(label).
				Path("functions", name).
				Detail("function is not present in the previously merged definition").
				Build()
		}
		if !sameSignature(ff, fi) {
			return errors.New(errors.PhaseMerge, errors.KindConflict).
				Entity(label).
				Path("functions", name).
				Detail("function signatures differ").
				Build()
		}
	}
	if count(from.Functions.All()) != count(into.Functions.All()) {
		return errors.Conflict(label, "sources declare different sets of functions")
	}
	return nil
}

func (m *merger) matchWorld(from, into *wit.World) error {
	m.worlds[from] = into
	label := "world " + WorldID(into)

	if err := m.matchItems(label, "imports", from.Imports.All(), into.Imports.All(), into.Imports.GetOK); err != nil {
		return err
	}
	if count(from.Imports.All()) != count(into.Imports.All()) {
		return errors.Conflict(label, "sources declare different sets of imports")
	}
	if err := m.matchItems(label, "exports", from.Exports.All(), into.Exports.All(), into.Exports.GetOK); err != nil {
		return err
	}
	if count(from.Exports.All()) != count(into.Exports.All()) {
		return errors.Conflict(label, "sources declare different sets of exports")
	}
	return nil
}

// matchItems pairs every item of from with one of into. References to named
// interfaces are paired through the interface they resolve to, since their
// keys are local to the graph they were parsed into; everything else is
// paired by key.
func (m *merger) matchItems(label, dir string, from, into iter.Seq2[string, wit.WorldItem], lookup func(string) (wit.WorldItem, bool)) error {
	for key, fi := range from {
		if ref, ok := fi.(*wit.InterfaceRef); ok && ref.Interface != nil && ref.Interface.Name != nil {
			if !hasInterface(into, m.iface(ref.Interface)) {
				return errors.New(errors.PhaseMerge, errors.KindConflict).
					Entity(label).
					Path(dir, InterfaceID(ref.Interface)).
					Detail("interface is not present in the previously merged definition").
					Build()
			}
			continue
		}

		ii, ok := lookup(key)
		if !ok {
			return errors.New(errors.PhaseMerge, errors.KindConflict).
				Entity(label).
				Path(dir, key).
				Detail("item is not present in the previously merged definition").
				Build()
		}
		conflict := errors.New(errors.PhaseMerge, errors.KindConflict).
			Entity(label).
			Path(dir, key).
			Detail("items differ in kind or shape").
			Build()

		switch f := fi.(type) {
		case *wit.InterfaceRef:
			i, ok := ii.(*wit.InterfaceRef)
			if !ok || f.Interface == nil || i.Interface == nil || i.Interface.Name != nil {
				return conflict
			}
			if err := m.matchInterface(f.Interface, i.Interface); err != nil {
				return err
			}
		case *wit.TypeDef:
			i, ok := ii.(*wit.TypeDef)
			if !ok || !sameKind(f.Kind, i.Kind) {
				return conflict
			}
			m.types[f] = i
		case *wit.Function:
			i, ok := ii.(*wit.Function)
			if !ok || !sameSignature(f, i) {
				return conflict
			}
		default:
			if reflect.TypeOf(fi) != reflect.TypeOf(ii) {
				return conflict
			}
		}
	}
	return nil
}

func (m *merger) adopt(src *wit.Resolve) {
	for _, p := range src.Packages {
		if _, ok := m.packages[p]; ok {
			continue
		}
		m.dst.Packages = append(m.dst.Packages, p)
		Logger().Debug("adopted package", zap.String("package", PackageID(p)))
	}

	for _, i := range src.Interfaces {
		if _, ok := m.interfaces[i]; ok {
			continue
		}
		target := m.pkg(i.Package)
		if target != i.Package && i.Name != nil {
			target.Interfaces.Set(*i.Name, i)
		}
		i.Package = target
		for _, f := range i.Functions.All() {
			m.function(f)
		}
		m.dst.Interfaces = append(m.dst.Interfaces, i)
	}

	for _, t := range src.TypeDefs {
		if _, ok := m.types[t]; ok {
			continue
		}
		t.Owner = m.owner(t.Owner)
		t.Kind = m.kind(t.Kind)
		m.dst.TypeDefs = append(m.dst.TypeDefs, t)
	}

	for _, w := range src.Worlds {
		if _, ok := m.worlds[w]; ok {
			continue
		}
		target := m.pkg(w.Package)
		if target != w.Package {
			target.Worlds.Set(w.Name, w)
		}
		w.Package = target
		m.worldItems(w)
		m.dst.Worlds = append(m.dst.Worlds, w)
	}
}

func (m *merger) worldItems(w *wit.World) {
	type update struct {
		key  string
		item wit.WorldItem
	}
	var imports, exports []update
	for key, item := range w.Imports.All() {
		if r := m.item(item); r != item {
			imports = append(imports, update{key, r})
		}
	}
	for key, item := range w.Exports.All() {
		if r := m.item(item); r != item {
			exports = append(exports, update{key, r})
		}
	}
	for _, u := range imports {
		w.Imports.Set(u.key, u.item)
	}
	for _, u := range exports {
		w.Exports.Set(u.key, u.item)
	}
}

func (m *merger) item(item wit.WorldItem) wit.WorldItem {
	switch it := item.(type) {
	case *wit.InterfaceRef:
		it.Interface = m.iface(it.Interface)
		return it
	case *wit.TypeDef:
		if r := m.typeDef(it); r != it {
			return r
		}
		return it
	case *wit.Function:
		m.function(it)
		return it
	}
	return item
}

func (m *merger) function(f *wit.Function) {
	for i := range f.Params {
		f.Params[i].Type = remap(m, f.Params[i].Type)
	}
	for i := range f.Results {
		f.Results[i].Type = remap(m, f.Results[i].Type)
	}
	switch k := f.Kind.(type) {
	case *wit.Method:
		k.Type = remap(m, k.Type)
	case *wit.Static:
		k.Type = remap(m, k.Type)
	case *wit.Constructor:
		k.Type = remap(m, k.Type)
	}
}

func (m *merger) kind(k wit.TypeDefKind) wit.TypeDefKind {
	switch k := k.(type) {
	case *wit.Record:
		for i := range k.Fields {
			k.Fields[i].Type = remap(m, k.Fields[i].Type)
		}
	case *wit.Tuple:
		for i := range k.Types {
			k.Types[i] = remap(m, k.Types[i])
		}
	case *wit.Variant:
		for i := range k.Cases {
			k.Cases[i].Type = remap(m, k.Cases[i].Type)
		}
	case *wit.Option:
		k.Type = remap(m, k.Type)
	case *wit.Result:
		k.OK = remap(m, k.OK)
		k.Err = remap(m, k.Err)
	case *wit.List:
		k.Type = remap(m, k.Type)
	case *wit.Own:
		k.Type = remap(m, k.Type)
	case *wit.Borrow:
		k.Type = remap(m, k.Type)
	case wit.Type:
		return remap(m, k)
	}
	return k
}

func (m *merger) owner(o wit.TypeOwner) wit.TypeOwner {
	switch o := o.(type) {
	case *wit.Interface:
		return m.iface(o)
	case *wit.World:
		return m.world(o)
	}
	return o
}

func (m *merger) pkg(p *wit.Package) *wit.Package {
	if r, ok := m.packages[p]; ok {
		return r
	}
	return p
}

func (m *merger) iface(i *wit.Interface) *wit.Interface {
	if r, ok := m.interfaces[i]; ok {
		return r
	}
	return i
}

func (m *merger) world(w *wit.World) *wit.World {
	if r, ok := m.worlds[w]; ok {
		return r
	}
	return w
}

func (m *merger) typeDef(t *wit.TypeDef) *wit.TypeDef {
	if r, ok := m.types[t]; ok {
		return r
	}
	return t
}

// remap replaces a reference to a unified source typedef with its
// destination counterpart. Primitive and nil types pass through.
func remap[T wit.Type](m *merger, t T) T {
	td, ok := any(t).(*wit.TypeDef)
	if !ok || td == nil {
		return t
	}
	if r, ok := m.types[td]; ok {
		return any(r).(T)
	}
	return t
}

func count[V any](seq iter.Seq2[string, V]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// sameKind compares two type definitions by kind and member names. Member
// types are not compared; identical package identifiers are trusted to
// carry identical types.
func sameKind(a, b wit.TypeDefKind) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch a := a.(type) {
	case *wit.Record:
		b := b.(*wit.Record)
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return false
			}
		}
	case *wit.Variant:
		b := b.(*wit.Variant)
		if len(a.Cases) != len(b.Cases) {
			return false
		}
		for i := range a.Cases {
			if a.Cases[i].Name != b.Cases[i].Name {
				return false
			}
		}
	case *wit.Enum:
		b := b.(*wit.Enum)
		if len(a.Cases) != len(b.Cases) {
			return false
		}
		for i := range a.Cases {
			if a.Cases[i].Name != b.Cases[i].Name {
				return false
			}
		}
	case *wit.Flags:
		b := b.(*wit.Flags)
		if len(a.Flags) != len(b.Flags) {
			return false
		}
		for i := range a.Flags {
			if a.Flags[i].Name != b.Flags[i].Name {
				return false
			}
		}
	case *wit.Tuple:
		return len(a.Types) == len(b.(*wit.Tuple).Types)
	}
	return true
}

func sameSignature(a, b *wit.Function) bool {
	if a.Name != b.Name || reflect.TypeOf(a.Kind) != reflect.TypeOf(b.Kind) {
		return false
	}
	if len(a.Params) != len(b.Params) || len(a.Results) != len(b.Results) {
		return false
	}
	for i := range a.Params {
		if a.Params[i].Name != b.Params[i].Name {
			return false
		}
	}
	return true
}

func kindName(k wit.TypeDefKind) string {
	switch k.(type) {
	case *wit.Record:
		return "record"
	case *wit.Variant:
		return "variant"
	case *wit.Enum:
		return "enum"
	case *wit.Flags:
		return "flags"
	case *wit.Tuple:
		return "tuple"
	case *wit.Option:
		return "option"
	case *wit.Result:
		return "result"
	case *wit.List:
		return "list"
	case *wit.Resource:
		return "resource"
	case *wit.Own:
		return "own"
	case *wit.Borrow:
		return "borrow"
	case nil:
		return "nothing"
	}
	return fmt.Sprintf("%T", k)
}

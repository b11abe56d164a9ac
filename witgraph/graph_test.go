package witgraph

import (
	"strconv"

	"github.com/coreos/go-semver/semver"
	"go.bytecodealliance.org/wit"
)

// Helpers for building small document graphs by hand.

func ident(ns, name, version string) wit.Ident {
	id := wit.Ident{Namespace: ns, Package: name}
	if version != "" {
		id.Version = semver.New(version)
	}
	return id
}

func addPackage(res *wit.Resolve, id wit.Ident) *wit.Package {
	p := &wit.Package{Name: id}
	res.Packages = append(res.Packages, p)
	return p
}

func addInterface(res *wit.Resolve, p *wit.Package, name string) *wit.Interface {
	n := name
	i := &wit.Interface{Name: &n, Package: p}
	p.Interfaces.Set(name, i)
	res.Interfaces = append(res.Interfaces, i)
	return i
}

func addType(res *wit.Resolve, owner *wit.Interface, name string, kind wit.TypeDefKind) *wit.TypeDef {
	n := name
	t := &wit.TypeDef{Name: &n, Kind: kind, Owner: owner}
	owner.TypeDefs.Set(name, t)
	res.TypeDefs = append(res.TypeDefs, t)
	return t
}

// useType declares `use from.{name}` inside owner.
func useType(res *wit.Resolve, owner *wit.Interface, target *wit.TypeDef) *wit.TypeDef {
	return addType(res, owner, *target.Name, target)
}

func addFunction(i *wit.Interface, name string, params ...wit.Param) *wit.Function {
	f := &wit.Function{Name: name, Kind: &wit.Freestanding{}, Params: params}
	i.Functions.Set(name, f)
	return f
}

func addWorld(res *wit.Resolve, p *wit.Package, name string) *wit.World {
	w := &wit.World{Name: name, Package: p}
	p.Worlds.Set(name, w)
	res.Worlds = append(res.Worlds, w)
	return w
}

// exportInterface and importInterface key items the way the parser does,
// with a name that only means something inside one graph.
func exportInterface(w *wit.World, i *wit.Interface) {
	w.Exports.Set(localKey(w), &wit.InterfaceRef{Interface: i})
}

func importInterface(w *wit.World, i *wit.Interface) {
	w.Imports.Set(localKey(w), &wit.InterfaceRef{Interface: i})
}

func localKey(w *wit.World) string {
	return "interface-" + strconv.Itoa(count(w.Imports.All())+count(w.Exports.All()))
}

func recordOf(fields ...string) *wit.Record {
	r := &wit.Record{}
	for _, f := range fields {
		r.Fields = append(r.Fields, wit.Field{Name: f, Type: wit.String{}})
	}
	return r
}

func exportedInterfaces(w *wit.World) []*wit.Interface {
	var out []*wit.Interface
	for _, item := range w.Exports.All() {
		if ref, ok := item.(*wit.InterfaceRef); ok {
			out = append(out, ref.Interface)
		}
	}
	return out
}

func importedInterfaces(w *wit.World) []*wit.Interface {
	var out []*wit.Interface
	for _, item := range w.Imports.All() {
		if ref, ok := item.(*wit.InterfaceRef); ok {
			out = append(out, ref.Interface)
		}
	}
	return out
}

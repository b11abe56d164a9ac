package layout

import (
	"github.com/coreos/go-semver/semver"
	"go.bytecodealliance.org/wit"
)

// PackageName is the (namespace, name, version) triple that identifies a
// package.
type PackageName struct {
	Namespace string
	Name      string
	Version   *semver.Version
}

// NameOf returns the name triple of p.
func NameOf(p *wit.Package) PackageName {
	return PackageName{
		Namespace: p.Name.Namespace,
		Name:      p.Name.Package,
		Version:   p.Name.Version,
	}
}

// String returns the fully qualified form, e.g. "wasi:io@0.2.0".
func (n PackageName) String() string {
	s := n.Namespace + ":" + n.Name
	if n.Version != nil {
		s += "@" + n.Version.String()
	}
	return s
}

// NameTable counts how many packages share each name, and how many of those
// also share a namespace. It is immutable once built.
type NameTable struct {
	byName      map[string]int
	byNamespace map[string]map[string]int
}

// NewNameTable counts names over the given package set.
func NewNameTable(names []PackageName) *NameTable {
	t := &NameTable{
		byName:      make(map[string]int),
		byNamespace: make(map[string]map[string]int),
	}
	for _, n := range names {
		t.byName[n.Name]++
		ns := t.byNamespace[n.Name]
		if ns == nil {
			ns = make(map[string]int)
			t.byNamespace[n.Name] = ns
		}
		ns[n.Namespace]++
	}
	return t
}

// SharedName returns how many counted packages are called name.
func (t *NameTable) SharedName(name string) int {
	return t.byName[name]
}

// SharedNamespace returns how many counted packages are called name and live
// in namespace.
func (t *NameTable) SharedNamespace(name, namespace string) int {
	return t.byNamespace[name][namespace]
}

// Identifier returns the directory name for n:
//
//  1. name, plus "-<version>" when versioned, if no other package shares the name;
//  2. "namespace:name" if the name is shared but the namespace is not;
//  3. "namespace:name@version" otherwise.
func (t *NameTable) Identifier(n PackageName) string {
	if t.SharedName(n.Name) <= 1 {
		if n.Version != nil {
			return n.Name + "-" + n.Version.String()
		}
		return n.Name
	}
	if t.SharedNamespace(n.Name, n.Namespace) <= 1 {
		return n.Namespace + ":" + n.Name
	}
	return n.String()
}

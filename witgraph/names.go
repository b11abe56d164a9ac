package witgraph

import (
	"strings"

	"go.bytecodealliance.org/wit"
)

// PackageID returns the canonical identifier of p, e.g. "wasi:io@0.2.0".
func PackageID(p *wit.Package) string {
	if p == nil {
		return ""
	}
	return p.Name.String()
}

// InterfaceID returns the qualified name of i, e.g. "wasi:io/streams@0.2.0".
// Anonymous interfaces have no qualified name and return "".
func InterfaceID(i *wit.Interface) string {
	if i == nil || i.Name == nil || i.Package == nil {
		return ""
	}
	return qualify(i.Package, *i.Name)
}

// WorldID returns the qualified name of w, e.g. "knitwit:combined/app".
func WorldID(w *wit.World) string {
	if w == nil {
		return ""
	}
	if w.Package == nil {
		return w.Name
	}
	return qualify(w.Package, w.Name)
}

func qualify(p *wit.Package, name string) string {
	id := p.Name
	var b strings.Builder
	b.WriteString(id.Namespace)
	b.WriteByte(':')
	b.WriteString(id.Package)
	b.WriteByte('/')
	b.WriteString(name)
	if id.Version != nil {
		b.WriteByte('@')
		b.WriteString(id.Version.String())
	}
	return b.String()
}

func interfaceLabel(i *wit.Interface) string {
	if id := InterfaceID(i); id != "" {
		return "interface " + id
	}
	return "anonymous interface"
}

func typeName(t *wit.TypeDef) string {
	if t == nil || t.Name == nil {
		return ""
	}
	return *t.Name
}

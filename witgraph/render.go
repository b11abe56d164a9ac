package witgraph

import (
	"go.bytecodealliance.org/wit"
)

// Render prints p as a standalone WIT document.
func Render(p *wit.Package) string {
	return p.WIT(nil, "")
}

// StripDocs clears every documentation comment reachable from res so that
// rendered output carries declarations only.
func StripDocs(res *wit.Resolve) {
	for _, p := range res.Packages {
		p.Docs = wit.Docs{}
	}
	for _, i := range res.Interfaces {
		i.Docs = wit.Docs{}
		for _, f := range i.Functions.All() {
			f.Docs = wit.Docs{}
		}
	}
	for _, w := range res.Worlds {
		w.Docs = wit.Docs{}
		for _, item := range w.Imports.All() {
			stripItem(item)
		}
		for _, item := range w.Exports.All() {
			stripItem(item)
		}
	}
	for _, t := range res.TypeDefs {
		stripTypeDef(t)
	}
}

func stripItem(item wit.WorldItem) {
	switch it := item.(type) {
	case *wit.Function:
		it.Docs = wit.Docs{}
	case *wit.TypeDef:
		stripTypeDef(it)
	}
}

func stripTypeDef(t *wit.TypeDef) {
	t.Docs = wit.Docs{}
	switch k := t.Kind.(type) {
	case *wit.Record:
		for i := range k.Fields {
			k.Fields[i].Docs = wit.Docs{}
		}
	case *wit.Variant:
		for i := range k.Cases {
			k.Cases[i].Docs = wit.Docs{}
		}
	case *wit.Enum:
		for i := range k.Cases {
			k.Cases[i].Docs = wit.Docs{}
		}
	case *wit.Flags:
		for i := range k.Flags {
			k.Flags[i].Docs = wit.Docs{}
		}
	}
}

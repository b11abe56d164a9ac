package layout

import (
	"testing"

	"github.com/coreos/go-semver/semver"
)

func name(ns, n, version string) PackageName {
	pn := PackageName{Namespace: ns, Name: n}
	if version != "" {
		pn.Version = semver.New(version)
	}
	return pn
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		names []PackageName
		want  []string
	}{
		{
			name:  "distinct names",
			names: []PackageName{name("wasi", "io", ""), name("wasi", "http", ""), name("acme", "db", "")},
			want:  []string{"io", "http", "db"},
		},
		{
			name:  "distinct names with versions",
			names: []PackageName{name("wasi", "io", "0.2.0"), name("wasi", "clocks", "0.2.1")},
			want:  []string{"io-0.2.0", "clocks-0.2.1"},
		},
		{
			name:  "shared name distinct namespaces",
			names: []PackageName{name("ns1", "pkgx", ""), name("ns2", "pkgx", ""), name("ns3", "pkgx", "1.0.0")},
			want:  []string{"ns1:pkgx", "ns2:pkgx", "ns3:pkgx"},
		},
		{
			name:  "shared name and namespace",
			names: []PackageName{name("wasi", "io", "0.2.0"), name("wasi", "io", "0.2.1")},
			want:  []string{"wasi:io@0.2.0", "wasi:io@0.2.1"},
		},
		{
			name: "mixed groups",
			names: []PackageName{
				name("wasi", "io", "0.2.0"),
				name("wasi", "io", "0.2.1"),
				name("acme", "io", ""),
				name("wasi", "cli", "0.2.0"),
			},
			want: []string{"wasi:io@0.2.0", "wasi:io@0.2.1", "acme:io", "cli-0.2.0"},
		},
		{
			name:  "shared name and namespace without version",
			names: []PackageName{name("wasi", "io", ""), name("wasi", "io", "0.2.0")},
			want:  []string{"wasi:io", "wasi:io@0.2.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewNameTable(tt.names)
			seen := make(map[string]bool)
			for i, n := range tt.names {
				got := table.Identifier(n)
				if got != tt.want[i] {
					t.Errorf("Identifier(%s) = %q, want %q", n, got, tt.want[i])
				}
				if seen[got] {
					t.Errorf("identifier %q assigned twice", got)
				}
				seen[got] = true
			}
		})
	}
}

func TestNameTable_Counts(t *testing.T) {
	table := NewNameTable([]PackageName{
		name("a", "x", ""),
		name("b", "x", ""),
		name("b", "x", "1.0.0"),
		name("c", "y", ""),
	})

	if got := table.SharedName("x"); got != 3 {
		t.Errorf("SharedName(x) = %d, want 3", got)
	}
	if got := table.SharedNamespace("x", "b"); got != 2 {
		t.Errorf("SharedNamespace(x, b) = %d, want 2", got)
	}
	if got := table.SharedNamespace("x", "c"); got != 0 {
		t.Errorf("SharedNamespace(x, c) = %d, want 0", got)
	}
	if got := table.SharedName("missing"); got != 0 {
		t.Errorf("SharedName(missing) = %d, want 0", got)
	}
}

func TestPackageName_String(t *testing.T) {
	if got := name("wasi", "io", "0.2.0").String(); got != "wasi:io@0.2.0" {
		t.Errorf("String() = %q", got)
	}
	if got := name("wasi", "io", "").String(); got != "wasi:io" {
		t.Errorf("String() = %q", got)
	}
}

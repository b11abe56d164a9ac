// Package manifest reads componentizejs.json style manifests, which list the
// WIT sources of installed JavaScript packages.
//
// A named entry is looked up only in the node_modules directory next to the
// manifest; parent directories and package.json "exports" are not searched
// the way Node module resolution would. Sources rejects entries whose
// resolved path does not exist instead of skipping them.
package manifest

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/wippyai/knitwit/errors"
)

// ModulesDir is the directory, next to the manifest, holding named packages.
const ModulesDir = "node_modules"

// Entry names one WIT source. An entry with an empty Name refers to a path
// relative to the manifest itself.
type Entry struct {
	Name    string `json:"name"`
	WitPath string `json:"witPath"`
}

// Load reads the manifest at path.
func Load(fs afero.Fs, path string) ([]Entry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			File(path).
			Detail("read manifest").
			Cause(err).
			Build()
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			File(path).
			Detail("decode manifest").
			Cause(err).
			Build()
	}
	for i, e := range entries {
		if e.WitPath == "" {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				File(path).
				Detail("entry %d has no witPath", i).
				Build()
		}
	}
	return entries, nil
}

// Resolve turns the entries of the manifest at path into WIT source paths,
// in manifest order.
func Resolve(path string, entries []Entry) []string {
	dir := filepath.Dir(path)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			out = append(out, filepath.Join(dir, e.WitPath))
			continue
		}
		out = append(out, filepath.Join(dir, ModulesDir, e.Name, e.WitPath))
	}
	return out
}

// Sources loads and resolves every manifest in paths, concatenating the
// results. Every resolved path must exist in fs.
func Sources(fs afero.Fs, paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		entries, err := Load(fs, p)
		if err != nil {
			return nil, err
		}
		resolved := Resolve(p, entries)
		for i, src := range resolved {
			ok, err := afero.Exists(fs, src)
			if err == nil && ok {
				continue
			}
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				File(p).
				Entity(entryName(entries[i])).
				Detail("WIT source %s does not exist", src).
				Cause(err).
				Build()
		}
		out = append(out, resolved...)
	}
	return out, nil
}

func entryName(e Entry) string {
	if e.Name == "" {
		return "entry " + e.WitPath
	}
	return "entry " + e.Name
}

// Package manifest models dreamcpp.toml, the per-project build description.
package manifest

import (
	"bytes"
	"os"
	"path/filepath"

	"dreamcpp/internal/logger"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

// Defaults applied to fields missing from a manifest document.
const (
	DefaultVersion           = "1.0.0"
	DefaultStandard          = "c++20"
	DefaultCompiler          = "clang++"
	DefaultDependencyVersion = "latest"
)

// Dependency is one entry of the manifest's dependency list.
// Its source location is deliberately absent: it is re-resolved on every sync.
type Dependency struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	System  bool   `toml:"system"` // linked from the host with -l<name> instead of cloned
}

// Manifest is the in-memory form of dreamcpp.toml.
type Manifest struct {
	Name              string       `toml:"name"`
	Version           string       `toml:"version"`
	Standard          string       `toml:"standard"`
	PreferredCompiler string       `toml:"preferred_compiler"`
	Includes          []string     `toml:"includes"`
	Dependencies      []Dependency `toml:"dependencies"`
}

// Default returns the manifest written by `new` for a project called name.
func Default(name string) *Manifest {
	return &Manifest{
		Name:              name,
		Version:           DefaultVersion,
		Standard:          DefaultStandard,
		PreferredCompiler: DefaultCompiler,
		Includes:          []string{},
		Dependencies:      []Dependency{},
	}
}

// Decode parses a manifest document. Absent fields take their defaults and an
// absent name falls back to fallbackName (the project directory name).
func Decode(data []byte, fallbackName string) (*Manifest, error) {
	m := Default("")
	// An explicit empty array must not leave the defaults in place
	m.Includes = nil
	m.Dependencies = nil

	if _, err := toml.Decode(string(data), m); err != nil {
		return nil, eris.Wrap(err, "malformed manifest")
	}

	if m.Name == "" {
		m.Name = fallbackName
	}
	if m.Includes == nil {
		m.Includes = []string{}
	}
	m.Dependencies = normalizeDependencies(m.Dependencies)

	if m.Name == "" {
		return nil, eris.New("manifest has no project name")
	}
	return m, nil
}

// normalizeDependencies drops nameless and repeated entries and fills in default versions.
func normalizeDependencies(deps []Dependency) []Dependency {
	out := make([]Dependency, 0, len(deps))
	seen := make(map[string]bool, len(deps))
	for _, dep := range deps {
		if dep.Name == "" {
			logger.Warn("[WARN] Ignoring dependency without a name\n")
			continue
		}
		if seen[dep.Name] {
			logger.Warn("[WARN] Ignoring duplicate dependency '%s'\n", dep.Name)
			continue
		}
		seen[dep.Name] = true
		if dep.Version == "" {
			dep.Version = DefaultDependencyVersion
		}
		out = append(out, dep)
	}
	return out
}

// Encode serializes the manifest. Every Dependency field is written, including
// system = false, so Decode(Encode(m)) reproduces m exactly.
func Encode(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, eris.Wrap(err, "failed to encode manifest")
	}
	return buf.Bytes(), nil
}

// Load reads and decodes the manifest at path.
// The project directory name is used when the document has no name.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read manifest %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	m, err := Decode(data, filepath.Base(filepath.Dir(abs)))
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse manifest %s", path)
	}
	return m, nil
}

// Save writes the manifest to path, replacing any previous content.
func Save(path string, m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrapf(err, "failed to write manifest %s", path)
	}
	logger.Debug("[DEBUG] Wrote manifest %s\n", path)
	return nil
}

// Has reports whether a dependency called name is listed.
func (m *Manifest) Has(name string) bool {
	for _, dep := range m.Dependencies {
		if dep.Name == name {
			return true
		}
	}
	return false
}

// Add appends dep unless a dependency with the same name is already listed.
// It reports whether the list changed.
func (m *Manifest) Add(dep Dependency) bool {
	if m.Has(dep.Name) {
		return false
	}
	if dep.Version == "" {
		dep.Version = DefaultDependencyVersion
	}
	m.Dependencies = append(m.Dependencies, dep)
	return true
}

// SystemLibraries returns the names of system dependencies in list order.
func (m *Manifest) SystemLibraries() []string {
	var libs []string
	for _, dep := range m.Dependencies {
		if dep.System {
			libs = append(libs, dep.Name)
		}
	}
	return libs
}

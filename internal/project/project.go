// Package project holds the explicit project context (root directory plus loaded
// manifest) that every command operates on, and the on-disk layout around it.
package project

import (
	"os"
	"path/filepath"

	"dreamcpp/internal/logger"
	"dreamcpp/internal/manifest"

	"github.com/rotisserie/eris"
)

// ManifestFile is the manifest file name inside a project root.
const ManifestFile = "dreamcpp.toml"

// ErrNotProject is returned when the manifest file does not exist.
var ErrNotProject = eris.New("not a dreamcpp project")

// Project is a loaded project: where it lives and what its manifest says.
type Project struct {
	Root         string
	ManifestPath string
	Manifest     *manifest.Manifest
}

// Open loads the project whose manifest is at manifestPath. The project root is
// the directory containing the manifest.
func Open(manifestPath string) (*Project, error) {
	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid manifest path %s", manifestPath)
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return nil, eris.Wrapf(ErrNotProject, "no manifest at %s", abs)
	}

	m, err := manifest.Load(abs)
	if err != nil {
		return nil, err
	}
	for _, finding := range m.Lint() {
		logger.Warn("[WARN] %s\n", finding)
	}

	return &Project{
		Root:         filepath.Dir(abs),
		ManifestPath: abs,
		Manifest:     m,
	}, nil
}

// Save persists the project's manifest.
func (p *Project) Save() error {
	return manifest.Save(p.ManifestPath, p.Manifest)
}

// SrcDir is where the project's sources live.
func (p *Project) SrcDir() string { return filepath.Join(p.Root, "src") }

// BuildDir holds every generated artifact.
func (p *Project) BuildDir() string { return filepath.Join(p.Root, "build") }

// DepsDir holds one materialized directory per dependency.
func (p *Project) DepsDir() string { return filepath.Join(p.BuildDir(), "deps") }

// DepDir is the materialization path of the named dependency.
func (p *Project) DepDir(name string) string { return filepath.Join(p.DepsDir(), name) }

// IncludesDir is the shared include directory fed by header-only relocation.
func (p *Project) IncludesDir() string { return filepath.Join(p.BuildDir(), "includes") }

// LibDir is the shared library search directory.
func (p *Project) LibDir() string { return filepath.Join(p.BuildDir(), "lib") }

// BinaryPath is where the compiled program is written.
func (p *Project) BinaryPath() string { return filepath.Join(p.BuildDir(), p.Manifest.Name) }

// Rel expresses path relative to the project root, for command lines run from the root.
func (p *Project) Rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return path
	}
	return rel
}

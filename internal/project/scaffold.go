package project

import (
	"os"
	"path/filepath"

	"dreamcpp/internal/logger"
	"dreamcpp/internal/manifest"

	"github.com/rotisserie/eris"
)

const starterSource = `#include <iostream>

int main() {
    std::cout << "Hello from dreamcpp!" << std::endl;
    return 0;
}
`

// Scaffold creates a new project called name inside parent and returns it.
// The project root itself must not exist yet; failing to create it is fatal,
// while a missing subdirectory is only reported as a warning.
func Scaffold(parent, name, manifestFile string) (*Project, error) {
	if name == "" {
		return nil, eris.New("project name must not be empty")
	}
	if manifestFile == "" {
		manifestFile = ManifestFile
	}

	root, err := filepath.Abs(filepath.Join(parent, name))
	if err != nil {
		return nil, eris.Wrapf(err, "invalid project path for %s", name)
	}

	// os.Mkdir (not MkdirAll) so an existing directory is refused
	if err := os.Mkdir(root, 0755); err != nil {
		return nil, eris.Wrapf(err, "failed to create project directory %s", root)
	}

	p := &Project{
		Root:         root,
		ManifestPath: filepath.Join(root, filepath.Base(manifestFile)),
		Manifest:     manifest.Default(name),
	}

	for _, dir := range []string{p.SrcDir(), p.BuildDir(), p.IncludesDir(), p.LibDir()} {
		if err := os.Mkdir(dir, 0755); err != nil {
			logger.Warn("[WARN] Could not create %s: %v\n", dir, err)
		}
	}

	if err := p.Save(); err != nil {
		return nil, err
	}

	mainFile := filepath.Join(p.SrcDir(), "main.cpp")
	if err := os.WriteFile(mainFile, []byte(starterSource), 0644); err != nil {
		logger.Warn("[WARN] Could not write starter source %s: %v\n", mainFile, err)
	}

	return p, nil
}

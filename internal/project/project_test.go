package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
)

func TestScaffoldLayout(t *testing.T) {
	parent := t.TempDir()
	p, err := Scaffold(parent, "hello", "")
	if err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"src", "build", "build/includes", "build/lib"} {
		info, err := os.Stat(filepath.Join(parent, "hello", dir))
		if err != nil || !info.IsDir() {
			t.Errorf("missing directory %s", dir)
		}
	}
	if _, err := os.Stat(filepath.Join(parent, "hello", "src", "main.cpp")); err != nil {
		t.Error("starter source not written")
	}

	opened, err := Open(filepath.Join(parent, "hello", ManifestFile))
	if err != nil {
		t.Fatal(err)
	}
	if opened.Manifest.Name != "hello" || opened.Root != p.Root {
		t.Errorf("unexpected project %+v", opened)
	}
}

func TestScaffoldExistingDirectoryFails(t *testing.T) {
	parent := t.TempDir()
	if err := os.Mkdir(filepath.Join(parent, "taken"), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := Scaffold(parent, "taken", ""); err == nil {
		t.Fatal("scaffolding over an existing directory must fail")
	}
}

func TestScaffoldCustomManifestName(t *testing.T) {
	parent := t.TempDir()
	p, err := Scaffold(parent, "custom", "configs/project.toml")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(p.ManifestPath) != "project.toml" {
		t.Errorf("unexpected manifest path %s", p.ManifestPath)
	}
	if _, err := os.Stat(filepath.Join(parent, "custom", "project.toml")); err != nil {
		t.Error("manifest not written under its custom name")
	}
}

func TestOpenMissingManifest(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), ManifestFile))
	if !eris.Is(err, ErrNotProject) {
		t.Fatalf("expected ErrNotProject, got %v", err)
	}
}

func TestLayoutPaths(t *testing.T) {
	parent := t.TempDir()
	p, err := Scaffold(parent, "paths", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Rel(p.DepDir("fmt")); got != filepath.Join("build", "deps", "fmt") {
		t.Errorf("unexpected dependency dir %s", got)
	}
	if got := p.Rel(p.BinaryPath()); got != filepath.Join("build", "paths") {
		t.Errorf("unexpected binary path %s", got)
	}
	if got := p.Rel(p.IncludesDir()); got != filepath.Join("build", "includes") {
		t.Errorf("unexpected includes dir %s", got)
	}
}

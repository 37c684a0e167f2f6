package builder

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"dreamcpp/internal/manifest"
	"dreamcpp/internal/project"
	"dreamcpp/internal/shell"

	"github.com/rotisserie/eris"
)

type call struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	capture shell.Result
	stream  int
	calls   []call
}

func (r *fakeRunner) Capture(dir, name string, args ...string) (shell.Result, error) {
	r.calls = append(r.calls, call{dir, name, args})
	return r.capture, nil
}

func (r *fakeRunner) Stream(dir, name string, args ...string) (int, error) {
	r.calls = append(r.calls, call{dir, name, args})
	return r.stream, nil
}

func scaffold(t *testing.T, edit func(m *manifest.Manifest)) *project.Project {
	t.Helper()
	p, err := project.Scaffold(t.TempDir(), "app", "")
	if err != nil {
		t.Fatal(err)
	}
	if edit != nil {
		edit(p.Manifest)
		if err := p.Save(); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestAssembleExample(t *testing.T) {
	p := scaffold(t, func(m *manifest.Manifest) {
		m.Includes = []string{"vendor"}
		m.Standard = "c++20"
		m.PreferredCompiler = "clang++"
		m.Add(manifest.Dependency{Name: "fmt"})
		m.Add(manifest.Dependency{Name: "m", System: true})
	})

	inv, err := Assemble(p)
	if err != nil {
		t.Fatal(err)
	}
	if inv.Program != "clang++" || inv.Dir != p.Root {
		t.Errorf("unexpected invocation %+v", inv)
	}
	want := []string{
		filepath.Join("src", "main.cpp"),
		"-o", filepath.Join("build", "app"),
		"-std=c++20",
		"-Ivendor",
		"-I" + filepath.Join("build", "includes"),
		"-L" + filepath.Join("build", "lib"),
		"-lm",
	}
	if !reflect.DeepEqual(inv.Args, want) {
		t.Errorf("got  %v\nwant %v", inv.Args, want)
	}
}

func TestAssembleSourceSelection(t *testing.T) {
	p := scaffold(t, nil)
	for _, name := range []string{"b.cc", "a.c", "notes.md", "util.hpp", "z.CXX"} {
		if err := os.WriteFile(filepath.Join(p.SrcDir(), name), []byte("//"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	nested := filepath.Join(p.SrcDir(), "nested")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "deep.cpp"), []byte("//"), 0644); err != nil {
		t.Fatal(err)
	}

	inv, err := Assemble(p)
	if err != nil {
		t.Fatal(err)
	}
	var sources []string
	for _, a := range inv.Args {
		if a == "-o" {
			break
		}
		sources = append(sources, filepath.Base(a))
	}
	if !reflect.DeepEqual(sources, []string{"a.c", "b.cc", "main.cpp", "z.CXX"}) {
		t.Errorf("unexpected sources %v", sources)
	}
}

func TestAssembleNoSrcDir(t *testing.T) {
	p := scaffold(t, nil)
	if err := os.RemoveAll(p.SrcDir()); err != nil {
		t.Fatal(err)
	}
	if _, err := Assemble(p); err == nil {
		t.Fatal("missing src directory must be fatal")
	}
}

func TestAssembleNoSources(t *testing.T) {
	p := scaffold(t, nil)
	if err := os.Remove(filepath.Join(p.SrcDir(), "main.cpp")); err != nil {
		t.Fatal(err)
	}
	if _, err := Assemble(p); !eris.Is(err, ErrNoSources) {
		t.Fatalf("expected ErrNoSources, got %v", err)
	}
}

func TestAssembleMissingManifest(t *testing.T) {
	p := scaffold(t, nil)
	if err := os.Remove(p.ManifestPath); err != nil {
		t.Fatal(err)
	}
	if _, err := Assemble(p); !eris.Is(err, project.ErrNotProject) {
		t.Fatalf("expected ErrNotProject, got %v", err)
	}
}

func TestBuildCompileFailure(t *testing.T) {
	p := scaffold(t, nil)
	runner := &fakeRunner{capture: shell.Result{ExitCode: 1, Output: "main.cpp:1: error: expected ';'\n"}}

	_, err := (&Orchestrator{Runner: runner}).Build(p)
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("expected CompileError, got %v", err)
	}
	if compileErr.Output != "main.cpp:1: error: expected ';'\n" || compileErr.ExitCode != 1 {
		t.Errorf("captured output not carried: %+v", compileErr)
	}
}

func TestRunBuildsThenStreamsBinary(t *testing.T) {
	p := scaffold(t, nil)
	runner := &fakeRunner{}
	if err := (&Orchestrator{Runner: runner}).Run(p); err != nil {
		t.Fatal(err)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected compile and run, got %+v", runner.calls)
	}
	if runner.calls[0].name != "clang++" {
		t.Errorf("first call must be the compiler, got %s", runner.calls[0].name)
	}
	if runner.calls[1].name != "./build/app" || runner.calls[1].dir != p.Root {
		t.Errorf("unexpected run call %+v", runner.calls[1])
	}
}

func TestRunStopsOnCompileFailure(t *testing.T) {
	p := scaffold(t, nil)
	runner := &fakeRunner{capture: shell.Result{ExitCode: 2}}
	if err := (&Orchestrator{Runner: runner}).Run(p); err == nil {
		t.Fatal("expected failure")
	}
	if len(runner.calls) != 1 {
		t.Errorf("binary must not run after a failed build, got %+v", runner.calls)
	}
}

func TestRunReportsBinaryExitCode(t *testing.T) {
	p := scaffold(t, nil)
	runner := &fakeRunner{stream: 7}
	if err := (&Orchestrator{Runner: runner}).Run(p); err == nil {
		t.Fatal("non-zero program exit must be reported")
	}
}

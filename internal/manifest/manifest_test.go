package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := &Manifest{
		Name:              "galaxy",
		Version:           "0.3.1",
		Standard:          "c++17",
		PreferredCompiler: "g++",
		Includes:          []string{"vendor", "third_party/include"},
		Dependencies: []Dependency{
			{Name: "fmt", Version: "latest", System: false},
			{Name: "m", Version: "latest", System: true},
			{Name: "spdlog", Version: "^1.12", System: false},
			{Name: "pthread", Version: "latest", System: true},
		},
	}

	data, err := Encode(original)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data, "unused")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip mismatch\nwant %+v\ngot  %+v\ndocument:\n%s", original, decoded, data)
	}
}

func TestRoundTripDefaultManifest(t *testing.T) {
	original := Default("hello")
	data, err := Encode(original)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data, "unused")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip mismatch\nwant %+v\ngot  %+v", original, decoded)
	}
}

func TestEncodeWritesSystemFalse(t *testing.T) {
	m := Default("p")
	m.Add(Dependency{Name: "fmt"})
	data, err := Encode(m)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "system = false") {
		t.Errorf("system flag must always be written:\n%s", data)
	}
}

func TestDecodeDefaults(t *testing.T) {
	doc := `
[[dependencies]]
name = "fmt"

[[dependencies]]
version = "1.0.0"

[[dependencies]]
name = "fmt"
system = true
`
	m, err := Decode([]byte(doc), "fallback")
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "fallback" {
		t.Errorf("expected fallback name, got %q", m.Name)
	}
	if m.Version != DefaultVersion || m.Standard != DefaultStandard || m.PreferredCompiler != DefaultCompiler {
		t.Errorf("defaults not applied: %+v", m)
	}
	if m.Includes == nil || len(m.Includes) != 0 {
		t.Errorf("includes should be empty, got %v", m.Includes)
	}
	want := []Dependency{{Name: "fmt", Version: "latest"}}
	if !reflect.DeepEqual(m.Dependencies, want) {
		t.Errorf("unexpected dependencies %+v", m.Dependencies)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode([]byte("name = \"unterminated"), "x"); err == nil {
		t.Fatal("malformed manifest must fail")
	}
}

func TestDecodeNoName(t *testing.T) {
	if _, err := Decode([]byte(`version = "1.0.0"`), ""); err == nil {
		t.Fatal("manifest without any name must fail")
	}
}

func TestLoadUsesDirectoryName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rocket")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "dreamcpp.toml")
	if err := os.WriteFile(path, []byte(`standard = "c++23"`), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "rocket" || m.Standard != "c++23" {
		t.Errorf("unexpected manifest %+v", m)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dreamcpp.toml")
	m := Default("saved")
	m.Includes = []string{"vendor"}
	m.Add(Dependency{Name: "m", Version: "latest", System: true})
	if err := Save(path, m); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m, loaded) {
		t.Errorf("want %+v, got %+v", m, loaded)
	}
}

func TestAddAndHas(t *testing.T) {
	m := Default("p")
	if !m.Add(Dependency{Name: "fmt"}) {
		t.Fatal("first add must change the list")
	}
	if m.Add(Dependency{Name: "fmt", System: true}) {
		t.Fatal("second add of the same name must not change the list")
	}
	if len(m.Dependencies) != 1 || m.Dependencies[0].Version != "latest" || m.Dependencies[0].System {
		t.Errorf("unexpected dependencies %+v", m.Dependencies)
	}
	if !m.Has("fmt") || m.Has("spdlog") {
		t.Error("Has reports wrong membership")
	}
}

func TestSystemLibraries(t *testing.T) {
	m := Default("p")
	m.Add(Dependency{Name: "pthread", System: true})
	m.Add(Dependency{Name: "fmt"})
	m.Add(Dependency{Name: "m", System: true})
	if got := m.SystemLibraries(); !reflect.DeepEqual(got, []string{"pthread", "m"}) {
		t.Errorf("unexpected system libraries %v", got)
	}
}

func TestLint(t *testing.T) {
	m := Default("p")
	if findings := m.Lint(); len(findings) != 0 {
		t.Errorf("default manifest should be clean, got %v", findings)
	}

	m.Version = "first"
	m.Add(Dependency{Name: "fmt", Version: ">= 9.0"})
	m.Add(Dependency{Name: "spdlog", Version: "trunk-ish"})
	findings := m.Lint()
	if len(findings) != 2 {
		t.Fatalf("expected two findings, got %v", findings)
	}
	if !strings.Contains(findings[0], "project version") || !strings.Contains(findings[1], "spdlog") {
		t.Errorf("unexpected findings %v", findings)
	}
}

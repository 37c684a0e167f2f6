package shell

import (
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	got := Format("clang++", "src/main.cpp", "-o", "build/my app")
	want := "clang++ src/main.cpp -o 'build/my app'"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExecRunnerCapture(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	res, err := ExecRunner{}.Capture(t.TempDir(), "sh", "-c", "echo out; echo err 1>&2; exit 3")
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Output, "out") || !strings.Contains(res.Output, "err") {
		t.Errorf("combined output missing a stream: %q", res.Output)
	}
}

func TestExecRunnerMissingProgram(t *testing.T) {
	if _, err := (ExecRunner{}).Capture(t.TempDir(), "dreamcpp-no-such-program"); err == nil {
		t.Fatal("starting a missing program must fail")
	}
}

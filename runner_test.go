package docprep

import (
	"os/exec"
	"strings"
	"testing"
)

func TestExecRunner_Run(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := &ExecRunner{}

	stdout, stderr, err := r.Run("sh", "-c", "echo out; echo err 1>&2")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.TrimSpace(stdout) != "out" {
		t.Errorf("stdout = %q, want out", stdout)
	}
	if strings.TrimSpace(stderr) != "err" {
		t.Errorf("stderr = %q, want err", stderr)
	}
}

func TestExecRunner_Run_Failure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := &ExecRunner{}

	_, stderr, err := r.Run("sh", "-c", "echo broken 1>&2; exit 3")
	if err == nil {
		t.Fatal("Run() expected error for non-zero exit")
	}
	if strings.TrimSpace(stderr) != "broken" {
		t.Errorf("stderr = %q, want broken", stderr)
	}
}

func TestExecRunner_Run_MissingBinary(t *testing.T) {
	r := &ExecRunner{}
	if _, _, err := r.Run("definitely-not-a-real-binary-docprep"); err == nil {
		t.Error("Run() expected error for missing binary")
	}
}

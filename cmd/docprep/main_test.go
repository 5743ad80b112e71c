package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

type testEnv struct {
	env    *Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv() *testEnv {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &testEnv{
		env: &Environment{
			Now:      time.Now,
			Stdout:   stdout,
			Stderr:   stderr,
			LookPath: func(string) (string, error) { return "", errors.New("not found") },
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func TestRun_Dispatch(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no command prints usage",
			args:       []string{"docprep"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: docprep",
		},
		{
			name:       "unknown command",
			args:       []string{"docprep", "frobnicate"},
			wantCode:   ExitUsage,
			wantStderr: "unknown command: frobnicate",
		},
		{
			name:       "version",
			args:       []string{"docprep", "version"},
			wantCode:   ExitSuccess,
			wantStdout: "docprep ",
		},
		{
			name:       "version flag alias",
			args:       []string{"docprep", "--version"},
			wantCode:   ExitSuccess,
			wantStdout: "docprep ",
		},
		{
			name:       "help",
			args:       []string{"docprep", "help"},
			wantCode:   ExitSuccess,
			wantStdout: "Commands:",
		},
		{
			name:       "help for a command",
			args:       []string{"docprep", "help", "run"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: docprep run",
		},
		{
			name:       "help for an unknown command",
			args:       []string{"docprep", "help", "frobnicate"},
			wantCode:   ExitSuccess,
			wantStderr: "Unknown command: frobnicate",
		},
		{
			name:       "convert without arguments",
			args:       []string{"docprep", "convert"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: docprep convert",
		},
		{
			name:       "tables without arguments",
			args:       []string{"docprep", "tables"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: docprep tables",
		},
		{
			name:       "rows with too many arguments",
			args:       []string{"docprep", "rows", "a.docx", "b.docx"},
			wantCode:   ExitUsage,
			wantStderr: "exactly one argument",
		},
		{
			name:       "run without arguments",
			args:       []string{"docprep", "run"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: docprep run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEnv()
			code := run(tt.args, te.env)
			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, te.stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(te.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", te.stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", te.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRun_ConvertNoBackend(t *testing.T) {
	dir := t.TempDir()
	input := writeFixtureFile(t, dir, "plan.doc", "legacy")

	te := newTestEnv()
	code := run([]string{"docprep", "convert", input}, te.env)
	if code != ExitBackend {
		t.Errorf("run() = %d, want %d (stderr: %s)", code, ExitBackend, te.stderr.String())
	}
	if !strings.Contains(te.stderr.String(), "Error:") {
		t.Errorf("stderr = %q, want an error line", te.stderr.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	te := newTestEnv()
	code := run([]string{"docprep", "tables", "--bogus", "x.docx"}, te.env)
	if code != ExitUsage {
		t.Errorf("run() = %d, want %d", code, ExitUsage)
	}
}

func TestRun_MissingConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFixtureFile(t, dir, "plan.doc", "legacy")

	te := newTestEnv()
	code := run([]string{"docprep", "convert", "--config", dir + "/nope.yaml", input}, te.env)
	if code != ExitUsage {
		t.Errorf("run() = %d, want %d (stderr: %s)", code, ExitUsage, te.stderr.String())
	}
}

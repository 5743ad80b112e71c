package main

import (
	"io"
	"os"
	"os/exec"
	"time"
)

// Environment groups the process-level dependencies of the CLI so tests can
// substitute buffers and fakes.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	LookPath func(string) (string, error)
}

func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		LookPath: exec.LookPath,
	}
}

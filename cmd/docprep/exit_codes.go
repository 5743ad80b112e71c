package main

import (
	"errors"
	"fmt"
	"io/fs"

	flag "github.com/spf13/pflag"

	docprep "github.com/alnah/go-docprep"
	"github.com/alnah/go-docprep/internal/config"
)

// errUsage marks command-line misuse so the process exits with ExitUsage.
var errUsage = errors.New("invalid usage")

// usageError wraps a flag or argument error as usage misuse. Help requests
// surface as flag.ErrHelp and are treated as success.
func usageError(err error) error {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return fmt.Errorf("%w: %v", errUsage, err)
}

// Exit codes returned by the CLI.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
	ExitBackend = 4
)

// exitCodeFor maps an error chain to a process exit code. Checks go from the
// most specific category to the most general.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, errUsage):
		return ExitUsage

	case errors.Is(err, docprep.ErrNoBackend),
		errors.Is(err, docprep.ErrUnknownBackend),
		errors.Is(err, docprep.ErrBackendNotFound),
		errors.Is(err, docprep.ErrOutputNotCreated):
		return ExitBackend

	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, docprep.ErrFileNotFound):
		return ExitIO

	case errors.Is(err, docprep.ErrEmptyPath),
		errors.Is(err, docprep.ErrInvalidExtension),
		errors.Is(err, docprep.ErrEmptySuffix),
		errors.Is(err, docprep.ErrEmptyMarker),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrInvalidBackend),
		errors.Is(err, config.ErrInvalidLogLevel),
		errors.Is(err, config.ErrInvalidCopy):
		return ExitUsage
	}

	return ExitGeneral
}

package main

import (
	"fmt"
	"log/slog"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docprep/internal/config"
	"github.com/alnah/go-docprep/internal/logging"
)

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	configName string
	quiet      bool
	verbose    bool
	logFile    string
}

// newFlagSet builds a FlagSet with the shared flags registered. Subcommands
// add their own flags before calling parse.
func newFlagSet(name string, env *Environment, cf *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.StringVarP(&cf.configName, "config", "c", "", "config file name or path")
	fs.BoolVarP(&cf.quiet, "quiet", "q", false, "suppress non-error output")
	fs.BoolVarP(&cf.verbose, "verbose", "v", false, "enable debug output")
	fs.StringVar(&cf.logFile, "log-file", "", "append logs to this file")
	return fs
}

// setup loads the config named by the flags and builds a logger from it.
// The returned closer flushes any log file and must be called before exit.
func setup(cf *commonFlags, env *Environment) (*config.Config, *slog.Logger, func() error, error) {
	var cfg *config.Config
	var err error
	if cf.configName != "" {
		cfg, err = config.LoadConfig(cf.configName)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	logFile := cfg.Log.File
	if cf.logFile != "" {
		logFile = cf.logFile
	}
	logger, closer, err := logging.New(env.Stderr, logging.Options{
		Verbose: cf.verbose,
		Quiet:   cf.quiet,
		Level:   cfg.Log.Level,
		File:    logFile,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing logging: %w", err)
	}
	return cfg, logger, closer, nil
}

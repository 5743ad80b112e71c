package main

import (
	"fmt"
	"io"
	"log/slog"

	docprep "github.com/alnah/go-docprep"
	"github.com/alnah/go-docprep/internal/config"
)

// runTables handles `docprep tables <input.docx>`.
func runTables(args []string, env *Environment) error {
	return runStep(args, env, "tables", printTablesUsage,
		func(cfg *config.Config, logger *slog.Logger, path string) error {
			if err := (docprep.TableLayoutRewriter{}).Rewrite(path); err != nil {
				return err
			}
			logger.Info("rewrote table layout", "path", path)
			return nil
		})
}

// runRows handles `docprep rows <input.docx>`.
func runRows(args []string, env *Environment) error {
	return runStep(args, env, "rows", printRowsUsage,
		func(cfg *config.Config, logger *slog.Logger, path string) error {
			expander := docprep.NewRowExpander()
			if len(cfg.Tables.SkipLabels) > 0 {
				expander.SkipLabels = cfg.Tables.SkipLabels
			}
			if err := expander.Expand(path); err != nil {
				return err
			}
			logger.Info("expanded table rows", "path", path)
			return nil
		})
}

// runCopies handles `docprep copies <input.docx>`.
func runCopies(args []string, env *Environment) error {
	return runStep(args, env, "copies", printCopiesUsage,
		func(cfg *config.Config, logger *slog.Logger, path string) error {
			gen := docprep.NewCopyGenerator(logger)
			if len(cfg.Copies) > 0 {
				gen.Profiles = profilesFromConfig(cfg.Copies)
			}
			created, err := gen.Generate(path)
			if err != nil {
				return err
			}
			for _, c := range created {
				fmt.Fprintln(env.Stdout, c)
			}
			return nil
		})
}

// runStep factors the shared flag parsing and single-positional contract of
// the per-stage subcommands.
func runStep(args []string, env *Environment, name string, usage func(io.Writer), step func(*config.Config, *slog.Logger, string) error) error {
	var cf commonFlags
	fs := newFlagSet(name, env, &cf)
	fs.Usage = func() { usage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if fs.NArg() != 1 {
		usage(env.Stderr)
		return usageError(fmt.Errorf("%s takes exactly one argument, got %d", name, fs.NArg()))
	}

	cfg, logger, closeLog, err := setup(&cf, env)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	return step(cfg, logger, fs.Arg(0))
}

// profilesFromConfig translates config copy definitions into copy profiles.
func profilesFromConfig(copies []config.CopyConfig) []docprep.CopyProfile {
	profiles := make([]docprep.CopyProfile, 0, len(copies))
	for _, c := range copies {
		p := docprep.CopyProfile{Suffix: c.Suffix, Header: c.Header}
		for _, r := range c.Remove {
			p.Removals = append(p.Removals, docprep.Removal{
				From:  r.From,
				To:    r.To,
				ToEnd: r.ToEnd,
			})
		}
		profiles = append(profiles, p)
	}
	return profiles
}

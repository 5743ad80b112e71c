package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	docprep "github.com/alnah/go-docprep"
)

// runPipeline handles `docprep run <input.doc>...`: convert, rewrite tables,
// expand rows, then generate the redacted copies. Multiple inputs are
// processed concurrently.
func runPipeline(args []string, env *Environment) error {
	var cf commonFlags
	var backend string
	var workers int
	fs := newFlagSet("run", env, &cf)
	fs.StringVarP(&backend, "backend", "b", "", "conversion backend: soffice, pandoc, word (default: auto)")
	fs.IntVarP(&workers, "workers", "w", 0, "concurrent documents (0 = auto)")
	fs.Usage = func() { printRunUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if fs.NArg() < 1 {
		printRunUsage(env.Stderr)
		return usageError(fmt.Errorf("run takes at least one argument"))
	}

	cfg, logger, closeLog, err := setup(&cf, env)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	if backend == "" {
		backend = cfg.Convert.Backend
	}

	opts := []docprep.Option{
		docprep.WithLogger(logger),
		docprep.WithBackend(docprep.Backend(backend)),
	}
	if len(cfg.Tables.SkipLabels) > 0 {
		opts = append(opts, docprep.WithSkipLabels(cfg.Tables.SkipLabels))
	}
	if len(cfg.Copies) > 0 {
		opts = append(opts, docprep.WithCopyProfiles(profilesFromConfig(cfg.Copies)))
	}
	svc := docprep.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if fs.NArg() == 1 {
		result, err := svc.Process(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		printResult(env, result)
		return nil
	}

	results := svc.ProcessAll(ctx, fs.Args(), workers)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "Error: %s: %v\n", r.InputPath, r.Err)
			continue
		}
		printResult(env, r.Result)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// printResult lists the produced files, one path per line.
func printResult(env *Environment, result *docprep.Result) {
	fmt.Fprintln(env.Stdout, result.DocxPath)
	for _, c := range result.Copies {
		fmt.Fprintln(env.Stdout, c)
	}
}

package main

import (
	"fmt"

	docprep "github.com/alnah/go-docprep"
)

// runConvert handles `docprep convert <input.doc> [<output.docx>]`.
func runConvert(args []string, env *Environment) error {
	var cf commonFlags
	var backend string
	fs := newFlagSet("convert", env, &cf)
	fs.StringVarP(&backend, "backend", "b", "", "conversion backend: soffice, pandoc, word (default: auto)")
	fs.Usage = func() { printConvertUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		printConvertUsage(env.Stderr)
		return usageError(fmt.Errorf("convert takes one or two arguments, got %d", fs.NArg()))
	}

	cfg, logger, closeLog, err := setup(&cf, env)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	if backend == "" {
		backend = cfg.Convert.Backend
	}

	conv := docprep.NewDocConverter()
	conv.Backend = docprep.Backend(backend)
	conv.LookPath = env.LookPath

	output := ""
	if fs.NArg() == 2 {
		output = fs.Arg(1)
	}

	docxPath, err := conv.Convert(fs.Arg(0), output)
	if err != nil {
		return err
	}
	logger.Info("converted document", "input", fs.Arg(0), "output", docxPath)
	fmt.Fprintln(env.Stdout, docxPath)
	return nil
}

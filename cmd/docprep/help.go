package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run        Run the full pipeline on a legacy .doc file")
	fmt.Fprintln(w, "  convert    Convert a .doc file to .docx")
	fmt.Fprintln(w, "  tables     Rewrite table layout in a .docx file")
	fmt.Fprintln(w, "  rows       Insert blank merged rows after table rows in a .docx file")
	fmt.Fprintln(w, "  copies     Generate headered, redacted copies of a .docx file")
	fmt.Fprintln(w, "  doctor     Check conversion backends and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docprep help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags every subcommand accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
	fmt.Fprintln(w, "  -v, --verbose          Show debug output")
	fmt.Fprintln(w, "      --log-file <path>  Append logs to this file")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep convert <input.doc> [<output.docx>] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a legacy .doc file to .docx using an installed backend.")
	fmt.Fprintln(w, "Without an output path, the result is written next to the input with")
	fmt.Fprintln(w, "'+' characters and spaces removed from the name.")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w, "  -b, --backend <name>   Backend: soffice, pandoc, word (default: auto-detect)")
}

// printTablesUsage prints usage for the tables command.
func printTablesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep tables <input.docx> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite every table to fixed layout at full page width and strip")
	fmt.Fprintln(w, "explicit column and cell widths. The file is updated in place.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printRowsUsage prints usage for the rows command.
func printRowsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep rows <input.docx> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Insert a blank row spanning all columns after each content row of")
	fmt.Fprintln(w, "every table. Tables whose first cell matches a skip label are left")
	fmt.Fprintln(w, "untouched. The file is updated in place.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printCopiesUsage prints usage for the copies command.
func printCopiesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep copies <input.docx> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate one copy per configured profile next to the input: each copy")
	fmt.Fprintln(w, "gets a suffixed filename, a centered header, and the configured")
	fmt.Fprintln(w, "sections removed. Created paths are printed to stdout.")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printRunUsage prints usage for the run command.
func printRunUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep run <input.doc>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the full pipeline: convert each .doc file to .docx, rewrite table")
	fmt.Fprintln(w, "layout, insert blank rows, then generate the redacted copies. The")
	fmt.Fprintln(w, "resulting paths are printed to stdout. Multiple inputs run")
	fmt.Fprintln(w, "concurrently.")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w, "  -b, --backend <name>   Backend: soffice, pandoc, word (default: auto-detect)")
	fmt.Fprintln(w, "  -w, --workers <n>      Concurrent documents (0 = auto)")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docprep doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check which conversion backends are installed and whether the")
	fmt.Fprintln(w, "environment is ready. Exits 1 when no backend is available.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "run":
		printRunUsage(env.Stdout)
	case "convert":
		printConvertUsage(env.Stdout)
	case "tables":
		printTablesUsage(env.Stdout)
	case "rows":
		printRowsUsage(env.Stdout)
	case "copies":
		printCopiesUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docprep version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docprep help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

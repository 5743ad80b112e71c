package docprep

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-docprep/internal/fileutil"
)

// DocConverter converts a legacy .doc file to .docx by invoking an external
// office backend. One attempt, synchronous, no retry.
type DocConverter struct {
	// Runner executes the backend process.
	Runner CommandRunner
	// Backend forces a specific backend; BackendAuto detects one.
	Backend Backend
	// LookPath locates backend binaries; defaults to exec.LookPath.
	LookPath func(name string) (string, error)

	// goos overrides runtime.GOOS in tests.
	goos string
}

// NewDocConverter creates a DocConverter with a real command runner and
// automatic backend detection.
func NewDocConverter() *DocConverter {
	return &DocConverter{Runner: &ExecRunner{}}
}

// resolvedBackend pairs a backend with the binary that will run it.
type resolvedBackend struct {
	backend Backend
	binary  string
}

// binaryCandidates lists the executables that can serve a backend.
func binaryCandidates(b Backend) []string {
	switch b {
	case BackendSoffice:
		return []string{"soffice", "libreoffice"}
	case BackendPandoc:
		return []string{"pandoc"}
	case BackendWord:
		return []string{"osascript"}
	}
	return nil
}

// detectionOrder returns the backend preference for a platform.
func detectionOrder(goos string) []Backend {
	if goos == "darwin" {
		return []Backend{BackendSoffice, BackendWord, BackendPandoc}
	}
	return []Backend{BackendSoffice, BackendPandoc}
}

// Convert converts inputPath to a .docx file. When outputPath is empty the
// output is written next to the input with a sanitized filename and a .docx
// extension. Returns the absolute output path.
func (c *DocConverter) Convert(inputPath, outputPath string) (string, error) {
	if inputPath == "" {
		return "", ErrEmptyPath
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".doc" {
		return "", fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	if !fileutil.FileExists(inputPath) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
	}

	absInput, err := filepath.Abs(inputPath)
	if err != nil {
		return "", fmt.Errorf("resolving input path: %w", err)
	}

	absOutput, err := c.resolveOutputPath(absInput, outputPath)
	if err != nil {
		return "", err
	}

	rb, err := c.pickBackend()
	if err != nil {
		return "", err
	}

	if err := c.invoke(rb, absInput, absOutput); err != nil {
		return "", err
	}

	if !fileutil.FileExists(absOutput) {
		return "", fmt.Errorf("%w: expected %s", ErrOutputNotCreated, absOutput)
	}
	return absOutput, nil
}

// resolveOutputPath derives the output path when none was supplied.
func (c *DocConverter) resolveOutputPath(absInput, outputPath string) (string, error) {
	if outputPath != "" {
		abs, err := filepath.Abs(outputPath)
		if err != nil {
			return "", fmt.Errorf("resolving output path: %w", err)
		}
		return abs, nil
	}
	base := strings.TrimSuffix(filepath.Base(absInput), filepath.Ext(absInput))
	return filepath.Join(filepath.Dir(absInput), SanitizeName(base)+".docx"), nil
}

// pickBackend resolves the configured or first detected backend to a binary.
func (c *DocConverter) pickBackend() (resolvedBackend, error) {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	goos := c.goos
	if goos == "" {
		goos = runtime.GOOS
	}

	if c.Backend != BackendAuto {
		candidates := binaryCandidates(c.Backend)
		if candidates == nil {
			return resolvedBackend{}, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
		}
		for _, bin := range candidates {
			if path, err := lookPath(bin); err == nil {
				return resolvedBackend{backend: c.Backend, binary: path}, nil
			}
		}
		return resolvedBackend{}, fmt.Errorf("%w: %s", ErrBackendNotFound, c.Backend)
	}

	for _, b := range detectionOrder(goos) {
		for _, bin := range binaryCandidates(b) {
			if path, err := lookPath(bin); err == nil {
				return resolvedBackend{backend: b, binary: path}, nil
			}
		}
	}
	return resolvedBackend{}, fmt.Errorf("%w: install LibreOffice or Pandoc", ErrNoBackend)
}

// invoke runs the backend process for one conversion.
func (c *DocConverter) invoke(rb resolvedBackend, absInput, absOutput string) error {
	switch rb.backend {
	case BackendSoffice:
		return c.invokeSoffice(rb.binary, absInput, absOutput)
	case BackendPandoc:
		return c.invokePandoc(rb.binary, absInput, absOutput)
	case BackendWord:
		return c.invokeWord(rb.binary, absInput, absOutput)
	}
	return fmt.Errorf("%w: %q", ErrUnknownBackend, rb.backend)
}

// invokeSoffice converts with LibreOffice. soffice names its output after the
// input file, so the result is moved when a different name was requested.
func (c *DocConverter) invokeSoffice(binary, absInput, absOutput string) error {
	outDir := filepath.Dir(absOutput)
	_, stderr, err := c.Runner.Run(binary,
		"--headless", "--convert-to", "docx", "--outdir", outDir, absInput)
	if err != nil {
		return fmt.Errorf("converting with soffice: %s: %w", strings.TrimSpace(stderr), err)
	}

	base := strings.TrimSuffix(filepath.Base(absInput), filepath.Ext(absInput))
	produced := filepath.Join(outDir, base+".docx")
	if produced != absOutput && fileutil.FileExists(produced) {
		if err := os.Rename(produced, absOutput); err != nil {
			return fmt.Errorf("renaming converted file: %w", err)
		}
	}
	return nil
}

// invokePandoc converts with the Pandoc CLI.
func (c *DocConverter) invokePandoc(binary, absInput, absOutput string) error {
	_, stderr, err := c.Runner.Run(binary, absInput, "-o", absOutput)
	if err != nil {
		return fmt.Errorf("converting with pandoc: %s: %w", strings.TrimSpace(stderr), err)
	}
	return nil
}

// invokeWord drives Microsoft Word through AppleScript.
func (c *DocConverter) invokeWord(binary, absInput, absOutput string) error {
	script := wordAppleScript(absInput, absOutput)
	_, stderr, err := c.Runner.Run(binary, "-e", script)
	if err != nil {
		return fmt.Errorf("converting with Microsoft Word: %s: %w", strings.TrimSpace(stderr), err)
	}
	return nil
}

// wordAppleScript builds the AppleScript that opens, saves as docx, and
// closes the document without quitting Word.
func wordAppleScript(absInput, absOutput string) string {
	return fmt.Sprintf(`tell application "Microsoft Word"
	set inputFile to POSIX file %q
	open inputFile
	set outputFile to POSIX file %q
	save as active document file name outputFile file format format document
	close active document saving no
end tell`, absInput, absOutput)
}

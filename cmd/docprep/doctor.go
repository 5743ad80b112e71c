package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string        `json:"status"` // "ready", "warnings", "errors"
	Backends []backendInfo `json:"backends"`
	Env      envInfo       `json:"environment"`
	System   systemInfo    `json:"system"`
	Warnings []string      `json:"warnings,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// backendInfo holds detection results for one conversion backend.
type backendInfo struct {
	Name    string `json:"name"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkBackends(result, env)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// backendProbe names the binaries probed for one backend.
type backendProbe struct {
	name     string
	binaries []string
}

// doctorBackends lists the binaries probed per backend, in detection order.
// Word is only usable through AppleScript, so it only appears on macOS.
func doctorBackends() []backendProbe {
	backends := []backendProbe{
		{"soffice", []string{"soffice", "libreoffice"}},
		{"pandoc", []string{"pandoc"}},
	}
	if runtime.GOOS == "darwin" {
		backends = append(backends, backendProbe{"word", []string{"osascript"}})
	}
	return backends
}

// checkBackends probes the PATH for every conversion backend. At least one
// must be present for conversion to work.
func checkBackends(result *doctorResult, env *Environment) {
	anyFound := false
	for _, b := range doctorBackends() {
		info := backendInfo{Name: b.name}
		for _, bin := range b.binaries {
			path, err := env.LookPath(bin)
			if err != nil {
				continue
			}
			info.Found = true
			info.Path = path
			info.Version = backendVersion(b.name, path)
			break
		}
		if info.Found {
			anyFound = true
		}
		result.Backends = append(result.Backends, info)
	}

	if !anyFound {
		result.Errors = append(result.Errors,
			"no conversion backend found. Install LibreOffice (soffice) or Pandoc")
	}
}

// backendVersion asks a backend binary for its version string. Failures are
// not diagnostic errors; the binary may still convert fine.
func backendVersion(name, path string) string {
	if name == "word" {
		// osascript has no meaningful version flag for Word detection.
		return ""
	}
	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return ""
	}
	line := string(out)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		result.Env.Container = true
	} else if os.Getenv("container") != "" || os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		result.Env.Container = true
	}

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "docprep-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "docprep doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Conversion backends")
	for _, b := range r.Backends {
		if b.Found {
			if b.Version != "" {
				fmt.Fprintf(w, "  [OK] %s: %s (%s)\n", b.Name, b.Path, b.Version)
			} else {
				fmt.Fprintf(w, "  [OK] %s: %s\n", b.Name, b.Path)
			}
		} else {
			fmt.Fprintf(w, "  [MISSING] %s\n", b.Name)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

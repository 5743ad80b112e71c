package docprep

import (
	"log/slog"
)

// Backend identifies a document conversion backend.
type Backend string

// Known conversion backends.
const (
	// BackendAuto picks the first available backend for the platform.
	BackendAuto Backend = ""
	// BackendSoffice converts with LibreOffice in headless mode.
	BackendSoffice Backend = "soffice"
	// BackendPandoc converts with the Pandoc CLI.
	BackendPandoc Backend = "pandoc"
	// BackendWord drives Microsoft Word through AppleScript (macOS only).
	BackendWord Backend = "word"
)

// Result describes a completed pipeline run.
type Result struct {
	// DocxPath is the converted intermediate document, mutated in place by
	// the table steps.
	DocxPath string
	// Copies lists the generated copy paths in profile order.
	Copies []string
}

// Removal describes one content removal inside a copy profile. Markers are
// matched case-insensitively as substrings of body paragraph text. The start
// marker is removed; with ToEnd everything after it goes too, otherwise
// removal stops just before the end marker.
type Removal struct {
	From  []string // start marker candidates, first match wins
	To    []string // end marker candidates (ignored when ToEnd)
	ToEnd bool
}

// CopyProfile describes one generated copy: its filename suffix, the
// centered header text, and the content removals to apply.
type CopyProfile struct {
	Suffix   string
	Header   string
	Removals []Removal
}

// Validate checks that the profile can be applied.
func (p *CopyProfile) Validate() error {
	if p.Suffix == "" {
		return ErrEmptySuffix
	}
	for _, r := range p.Removals {
		if len(r.From) == 0 {
			return ErrEmptyMarker
		}
	}
	return nil
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	backend    Backend
	runner     CommandRunner
	skipLabels []string
	profiles   []CopyProfile
}

// WithLogger sets the logger used by the pipeline. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBackend forces a specific conversion backend instead of auto-detection.
func WithBackend(b Backend) Option {
	return func(s *Service) {
		s.cfg.backend = b
	}
}

// WithRunner overrides command execution (e.g., by tests).
func WithRunner(r CommandRunner) Option {
	return func(s *Service) {
		s.cfg.runner = r
	}
}

// WithSkipLabels replaces the default first-cell labels that exempt a table
// from row expansion.
func WithSkipLabels(labels []string) Option {
	return func(s *Service) {
		s.cfg.skipLabels = labels
	}
}

// WithCopyProfiles replaces the default copy profiles.
func WithCopyProfiles(profiles []CopyProfile) Option {
	return func(s *Service) {
		s.cfg.profiles = profiles
	}
}

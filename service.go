package docprep

import (
	"context"
	"fmt"
	"log/slog"
)

// Per-step interfaces so tests can substitute fakes.
type docToDocxConverter interface {
	Convert(inputPath, outputPath string) (string, error)
}

type tableLayoutRewriter interface {
	Rewrite(path string) error
}

type rowExpander interface {
	Expand(path string) error
}

type copyGenerator interface {
	Generate(path string) ([]string, error)
}

// Compile-time interface implementation checks.
var (
	_ docToDocxConverter  = (*DocConverter)(nil)
	_ tableLayoutRewriter = TableLayoutRewriter{}
	_ rowExpander         = (*RowExpander)(nil)
	_ copyGenerator       = (*CopyGenerator)(nil)
)

// Service orchestrates the document preparation pipeline: convert, rewrite
// table layout, expand rows, generate copies. Steps run in fixed order and
// the first failure stops the run; intermediate files stay on disk.
type Service struct {
	cfg       serviceConfig
	logger    *slog.Logger
	converter docToDocxConverter
	tables    tableLayoutRewriter
	rows      rowExpander
	copies    copyGenerator
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithBackend, WithLogger).
func New(opts ...Option) *Service {
	s := &Service{logger: slog.Default()}

	for _, opt := range opts {
		opt(s)
	}

	runner := s.cfg.runner
	if runner == nil {
		runner = &ExecRunner{}
	}
	if s.converter == nil {
		s.converter = &DocConverter{Runner: runner, Backend: s.cfg.backend}
	}
	if s.tables == nil {
		s.tables = TableLayoutRewriter{}
	}
	if s.rows == nil {
		expander := NewRowExpander()
		if s.cfg.skipLabels != nil {
			expander.SkipLabels = s.cfg.skipLabels
		}
		s.rows = expander
	}
	if s.copies == nil {
		gen := NewCopyGenerator(s.logger)
		if s.cfg.profiles != nil {
			gen.Profiles = s.cfg.profiles
		}
		s.copies = gen
	}

	return s
}

// Process runs the full pipeline on a .doc file and returns the produced
// paths. The context is checked between steps; a running backend process is
// not interrupted.
func (s *Service) Process(ctx context.Context, docPath string) (*Result, error) {
	s.logger.Info("starting document processing", "input", docPath)

	docxPath, err := s.converter.Convert(docPath, "")
	if err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}
	s.logger.Info("converted document", "output", docxPath)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := s.tables.Rewrite(docxPath); err != nil {
		return nil, fmt.Errorf("rewriting table layout: %w", err)
	}
	s.logger.Info("rewrote table layout")
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := s.rows.Expand(docxPath); err != nil {
		return nil, fmt.Errorf("expanding table rows: %w", err)
	}
	s.logger.Info("expanded table rows")
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	copies, err := s.copies.Generate(docxPath)
	if err != nil {
		return nil, fmt.Errorf("generating copies: %w", err)
	}

	s.logger.Info("processing complete", "docx", docxPath, "copies", len(copies))
	return &Result{DocxPath: docxPath, Copies: copies}, nil
}

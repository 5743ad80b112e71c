package docprep

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/alnah/go-docprep/internal/docxml"
	"github.com/alnah/go-docprep/internal/fileutil"
)

// DefaultCopyProfiles returns the three standard evidence copies: stage and
// stage-DR copies truncated at the rollback section, and a rollback copy with
// the pre-deploy steps cut out.
func DefaultCopyProfiles() []CopyProfile {
	return []CopyProfile{
		{
			Suffix: "Stage-Evidence",
			Header: "Deploy to Stage",
			Removals: []Removal{
				{From: []string{"Rollback"}, ToEnd: true},
			},
		},
		{
			Suffix: "StageDR-Evidence",
			Header: "Deploy to StageDR",
			Removals: []Removal{
				{From: []string{"Rollback"}, ToEnd: true},
			},
		},
		{
			Suffix: "Rollback-Evidence",
			Header: "Rollback",
			Removals: []Removal{
				{From: []string{"Pre-Deploy Steps", "Pre Steps"}, To: []string{"Rollback"}},
			},
		},
	}
}

// CopyGenerator produces renamed, headered, redacted copies of a document.
// Missing section markers are logged and skipped rather than failing the
// copy: the copies are best-effort evidence templates.
type CopyGenerator struct {
	Profiles []CopyProfile

	logger *slog.Logger
}

// NewCopyGenerator creates a CopyGenerator with the default profiles.
func NewCopyGenerator(logger *slog.Logger) *CopyGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &CopyGenerator{Profiles: DefaultCopyProfiles(), logger: logger}
}

// Generate creates one copy per profile next to the source document and
// returns the created paths. A profile that fails to build is logged and
// skipped; an invalid profile is an error.
func (g *CopyGenerator) Generate(path string) ([]string, error) {
	var created []string
	for i := range g.Profiles {
		profile := &g.Profiles[i]
		if err := profile.Validate(); err != nil {
			return created, fmt.Errorf("copy profile %q: %w", profile.Suffix, err)
		}
		newPath, err := g.generateOne(path, profile)
		if err != nil {
			g.logger.Error("creating copy failed",
				"suffix", profile.Suffix, "error", err)
			continue
		}
		g.logger.Info("created copy", "path", filepath.Base(newPath))
		created = append(created, newPath)
	}
	return created, nil
}

// generateOne builds a single copy: duplicate the file under the transformed
// name, replace the header, apply the removals, save.
func (g *CopyGenerator) generateOne(path string, profile *CopyProfile) (string, error) {
	newPath := filepath.Join(filepath.Dir(path), CopyFileName(filepath.Base(path), profile.Suffix))

	if err := fileutil.CopyFile(path, newPath); err != nil {
		return "", fmt.Errorf("copying file: %w", err)
	}

	pkg, err := docxml.Open(newPath)
	if err != nil {
		return "", fmt.Errorf("opening copy: %w", err)
	}

	if err := pkg.SetHeaderText(profile.Header); err != nil {
		return "", fmt.Errorf("setting header: %w", err)
	}

	for _, removal := range profile.Removals {
		if err := g.applyRemoval(pkg, removal); err != nil {
			return "", err
		}
	}

	if err := pkg.Save(); err != nil {
		return "", fmt.Errorf("saving copy: %w", err)
	}
	return newPath, nil
}

// applyRemoval deletes body content anchored on the removal's markers.
// Marker-not-found is a warning, never an error.
func (g *CopyGenerator) applyRemoval(pkg *docxml.Package, removal Removal) error {
	body, err := pkg.Body()
	if err != nil {
		return err
	}

	start := findMarkerParagraph(body, removal.From)
	if start == nil {
		g.logger.Warn("section marker not found, leaving content in place",
			"markers", strings.Join(removal.From, ", "))
		return nil
	}

	if removal.ToEnd {
		removeToEnd(body, start)
		return nil
	}

	end := findMarkerParagraph(body, removal.To)
	if end == nil {
		g.logger.Warn("section marker not found, leaving content in place",
			"markers", strings.Join(removal.To, ", "))
		return nil
	}
	if start.Index() >= end.Index() {
		g.logger.Warn("start marker appears after end marker, leaving content in place",
			"start", strings.Join(removal.From, ", "),
			"end", strings.Join(removal.To, ", "))
		return nil
	}

	removeBetween(body, start, end)
	return nil
}

// findMarkerParagraph returns the first body paragraph whose text contains
// any of the names, case-insensitively.
func findMarkerParagraph(body *etree.Element, names []string) *etree.Element {
	for _, para := range body.SelectElements("w:p") {
		text := strings.ToLower(strings.TrimSpace(docxml.ParagraphText(para)))
		for _, name := range names {
			if name != "" && strings.Contains(text, strings.ToLower(name)) {
				return para
			}
		}
	}
	return nil
}

// removeBetween deletes body children from start (inclusive) to end
// (exclusive).
func removeBetween(body *etree.Element, start, end *etree.Element) {
	si, ei := start.Index(), end.Index()
	var doomed []*etree.Element
	for _, child := range body.ChildElements() {
		if idx := child.Index(); idx >= si && idx < ei {
			doomed = append(doomed, child)
		}
	}
	for _, child := range doomed {
		body.RemoveChild(child)
	}
}

// removeToEnd deletes body children from start (inclusive) to the end of the
// body. Section properties survive so the document stays valid.
func removeToEnd(body *etree.Element, start *etree.Element) {
	si := start.Index()
	var doomed []*etree.Element
	for _, child := range body.ChildElements() {
		if child.Tag == "sectPr" {
			continue
		}
		if child.Index() >= si {
			doomed = append(doomed, child)
		}
	}
	for _, child := range doomed {
		body.RemoveChild(child)
	}
}

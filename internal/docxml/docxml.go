// Package docxml provides read-modify-write access to DOCX (Office Open XML)
// packages. A package is a ZIP container of XML parts; parts are parsed on
// demand into an XML tree and serialized back on save, while untouched parts
// are carried through byte for byte.
package docxml

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// Well-known part names.
const (
	MainPart         = "word/document.xml"
	ContentTypesPart = "[Content_Types].xml"
	DocumentRelsPart = "word/_rels/document.xml.rels"
)

// Sentinel errors for package operations.
var (
	ErrPartNotFound = errors.New("part not found in package")
	ErrPartExists   = errors.New("part already exists in package")
)

// Package holds the contents of an opened DOCX file.
// Not safe for concurrent use; each pipeline step opens, mutates, and saves.
type Package struct {
	path   string
	names  []string
	raw    map[string][]byte
	parsed map[string]*etree.Document
}

// Open reads an entire DOCX file into memory.
func Open(path string) (*Package, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()

	p := &Package{
		path:   path,
		raw:    make(map[string][]byte, len(zr.File)),
		parsed: make(map[string]*etree.Document),
	}

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		p.names = append(p.names, f.Name)
		p.raw[f.Name] = data
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// validate checks that required DOCX parts exist.
func (p *Package) validate() error {
	required := []string{ContentTypesPart, MainPart}
	for _, name := range required {
		if _, ok := p.raw[name]; !ok {
			return fmt.Errorf("missing required part: %s", name)
		}
	}
	return nil
}

// Path returns the file path the package was opened from.
func (p *Package) Path() string { return p.path }

// Has reports whether the named part exists.
func (p *Package) Has(name string) bool {
	_, ok := p.raw[name]
	return ok
}

// PartNames returns all part names in archive order.
func (p *Package) PartNames() []string {
	names := make([]string, len(p.names))
	copy(names, p.names)
	return names
}

// Part parses the named part into an XML tree. The tree is cached: repeated
// calls return the same document, and any mutation is picked up by Save.
func (p *Package) Part(name string) (*etree.Document, error) {
	if doc, ok := p.parsed[name]; ok {
		return doc, nil
	}
	data, ok := p.raw[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing part %s: %w", name, err)
	}
	p.parsed[name] = doc
	return doc, nil
}

// AddPart registers a new XML part. The part is appended after existing
// entries on save.
func (p *Package) AddPart(name string, doc *etree.Document) error {
	if _, ok := p.raw[name]; ok {
		return fmt.Errorf("%w: %s", ErrPartExists, name)
	}
	p.names = append(p.names, name)
	p.raw[name] = nil
	p.parsed[name] = doc
	return nil
}

// Save writes the package back to the file it was opened from.
func (p *Package) Save() error {
	return p.SaveAs(p.path)
}

// SaveAs writes the package to the given path, preserving part order.
// Parsed parts are re-serialized; untouched parts keep their original bytes.
func (p *Package) SaveAs(path string) error {
	out, err := os.Create(path) // #nosec G304 -- caller-controlled document path
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	zw := zip.NewWriter(out)
	for _, name := range p.names {
		data, err := p.partBytes(name)
		if err != nil {
			_ = zw.Close()
			_ = out.Close()
			return err
		}
		w, err := zw.Create(name)
		if err != nil {
			_ = zw.Close()
			_ = out.Close()
			return fmt.Errorf("creating ZIP entry %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			_ = zw.Close()
			_ = out.Close()
			return fmt.Errorf("writing ZIP entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("finalizing ZIP archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// partBytes returns the serialized content of a part.
func (p *Package) partBytes(name string) ([]byte, error) {
	if doc, ok := p.parsed[name]; ok {
		data, err := doc.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serializing part %s: %w", name, err)
		}
		return data, nil
	}
	return p.raw[name], nil
}

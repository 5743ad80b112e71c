// Package docxmltest builds minimal DOCX fixtures for tests.
package docxmltest

import (
	"archive/zip"
	"bytes"
	"os"
	"strings"
	"testing"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const contentTypesXML = xmlDecl +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

// WriteFile writes a DOCX file whose body contains bodyXML followed by an
// empty w:sectPr. Returns the path for convenience.
func WriteFile(t testing.TB, path, bodyXML string) string {
	t.Helper()
	documentXML := xmlDecl +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + bodyXML + `<w:sectPr/></w:body></w:document>`
	return WriteFileParts(t, path, map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"word/document.xml":   documentXML,
	})
}

// WriteFileParts writes a DOCX file with exactly the given parts.
func WriteFileParts(t testing.TB, path string, parts map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	// Deterministic order: content types first, then the rest sorted by use.
	order := []string{"[Content_Types].xml", "word/document.xml"}
	seen := map[string]bool{}
	for _, name := range order {
		if content, ok := parts[name]; ok {
			writeEntry(t, zw, name, content)
			seen[name] = true
		}
	}
	for name, content := range parts {
		if !seen[name] {
			writeEntry(t, zw, name, content)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing fixture ZIP: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing fixture file: %v", err)
	}
	return path
}

func writeEntry(t testing.TB, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("creating fixture entry %s: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("writing fixture entry %s: %v", name, err)
	}
}

// Para builds a body paragraph with a single run.
func Para(text string) string {
	return `<w:p><w:r><w:t>` + escape(text) + `</w:t></w:r></w:p>`
}

// Table wraps the given fragments (properties, grid, rows) in w:tbl.
func Table(parts ...string) string {
	return `<w:tbl>` + strings.Join(parts, "") + `</w:tbl>`
}

// Grid builds a w:tblGrid. An empty width emits a gridCol without w:w.
func Grid(widths ...string) string {
	var sb strings.Builder
	sb.WriteString(`<w:tblGrid>`)
	for _, w := range widths {
		if w == "" {
			sb.WriteString(`<w:gridCol/>`)
		} else {
			sb.WriteString(`<w:gridCol w:w="` + w + `"/>`)
		}
	}
	sb.WriteString(`</w:tblGrid>`)
	return sb.String()
}

// Row builds a w:tr from cell fragments.
func Row(cells ...string) string {
	return `<w:tr>` + strings.Join(cells, "") + `</w:tr>`
}

// RowWith builds a w:tr with the given w:trPr content.
func RowWith(trPr string, cells ...string) string {
	return `<w:tr><w:trPr>` + trPr + `</w:trPr>` + strings.Join(cells, "") + `</w:tr>`
}

// Cell builds a w:tc holding a single paragraph.
func Cell(text string) string {
	return `<w:tc>` + Para(text) + `</w:tc>`
}

// CellWith builds a w:tc with the given w:tcPr content and text.
func CellWith(tcPr, text string) string {
	return `<w:tc><w:tcPr>` + tcPr + `</w:tcPr>` + Para(text) + `</w:tc>`
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

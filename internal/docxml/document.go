package docxml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Body returns the w:body element of the main document part.
func (p *Package) Body() (*etree.Element, error) {
	doc, err := p.Part(MainPart)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document part has no root element")
	}
	body := root.SelectElement("w:body")
	if body == nil {
		return nil, fmt.Errorf("document part has no w:body element")
	}
	return body, nil
}

// Tables returns the top-level tables of the document body, in order.
// Tables nested inside cells are not included, matching how the document
// object model exposes doc-level tables.
func (p *Package) Tables() ([]*etree.Element, error) {
	body, err := p.Body()
	if err != nil {
		return nil, err
	}
	return body.SelectElements("w:tbl"), nil
}

// BodyParagraphs returns the top-level paragraphs of the document body.
func (p *Package) BodyParagraphs() ([]*etree.Element, error) {
	body, err := p.Body()
	if err != nil {
		return nil, err
	}
	return body.SelectElements("w:p"), nil
}

// Rows returns the direct w:tr children of a table.
func Rows(tbl *etree.Element) []*etree.Element {
	return tbl.SelectElements("w:tr")
}

// Cells returns the direct w:tc children of a row.
func Cells(tr *etree.Element) []*etree.Element {
	return tr.SelectElements("w:tc")
}

// ParagraphText returns the concatenated run text of a paragraph,
// including runs inside hyperlinks and other wrappers.
func ParagraphText(para *etree.Element) string {
	var sb strings.Builder
	for _, t := range para.FindElements(".//w:t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// CellText returns the text of a cell: paragraph texts joined by newlines.
// Only the cell's own paragraphs are considered, not nested tables.
func CellText(tc *etree.Element) string {
	var parts []string
	for _, para := range tc.SelectElements("w:p") {
		parts = append(parts, ParagraphText(para))
	}
	return strings.Join(parts, "\n")
}

// RowHasContent reports whether any cell in the row has non-blank text.
func RowHasContent(tr *etree.Element) bool {
	for _, tc := range Cells(tr) {
		if strings.TrimSpace(CellText(tc)) != "" {
			return true
		}
	}
	return false
}

// GridColumnCount returns the number of w:gridCol entries in the table grid,
// falling back to the first row's cell count when the grid is absent.
func GridColumnCount(tbl *etree.Element) int {
	if grid := tbl.SelectElement("w:tblGrid"); grid != nil {
		if n := len(grid.SelectElements("w:gridCol")); n > 0 {
			return n
		}
	}
	rows := Rows(tbl)
	if len(rows) == 0 {
		return 0
	}
	return len(Cells(rows[0]))
}

// EnsureChild returns the named direct child of parent, creating it as the
// first child when absent.
func EnsureChild(parent *etree.Element, tag string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}
	el := etree.NewElement(tag)
	parent.InsertChildAt(0, el)
	return el
}

// ReplaceChild removes any existing direct children with the given tag and
// appends the replacement.
func ReplaceChild(parent *etree.Element, tag string, replacement *etree.Element) {
	for _, old := range parent.SelectElements(tag) {
		parent.RemoveChild(old)
	}
	parent.AddChild(replacement)
}

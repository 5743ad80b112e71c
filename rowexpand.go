package docprep

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/alnah/go-docprep/internal/docxml"
)

// DefaultSkipLabels lists first-cell texts that exempt a whole table from row
// expansion. Matching is by substring on the first cell of the first row.
var DefaultSkipLabels = []string{
	"Change request numbers",
	"Tickets",
	"Trivy Scan Findings Remediation Plan",
}

// RowExpander inserts a blank merged row after every content-bearing table
// row, so evidence can be pasted under each step. Not idempotent: rows
// inserted by a previous run are blank and therefore skipped, but content
// rows gain another blank row on every run.
type RowExpander struct {
	SkipLabels []string
}

// NewRowExpander creates a RowExpander with the default skip labels.
func NewRowExpander() *RowExpander {
	return &RowExpander{SkipLabels: DefaultSkipLabels}
}

// Expand updates every table in place.
func (e *RowExpander) Expand(path string) error {
	pkg, err := docxml.Open(path)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}

	tables, err := pkg.Tables()
	if err != nil {
		return err
	}
	for _, tbl := range tables {
		e.expandTable(tbl)
	}

	if err := pkg.Save(); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// expandTable processes one table: skip-label check, first-row cleanup, then
// blank-row insertion after each content row.
func (e *RowExpander) expandTable(tbl *etree.Element) {
	rows := docxml.Rows(tbl)
	if len(rows) == 0 {
		return
	}

	if e.skipTable(rows[0]) {
		return
	}

	if isSingleEmptyCell(rows[0]) {
		tbl.RemoveChild(rows[0])
		rows = rows[1:]
	}

	cols := docxml.GridColumnCount(tbl)

	// Snapshot taken above: rows inserted below are never revisited.
	for _, tr := range rows {
		if !docxml.RowHasContent(tr) {
			continue
		}
		tbl.InsertChildAt(tr.Index()+1, blankMergedRow(tr, cols))
	}
}

// skipTable reports whether the table's first cell carries a skip label.
func (e *RowExpander) skipTable(firstRow *etree.Element) bool {
	cells := docxml.Cells(firstRow)
	if len(cells) == 0 {
		return false
	}
	text := strings.TrimSpace(docxml.CellText(cells[0]))
	for _, label := range e.SkipLabels {
		if strings.Contains(text, label) {
			return true
		}
	}
	return false
}

// isSingleEmptyCell reports whether the row is one cell with blank text.
func isSingleEmptyCell(tr *etree.Element) bool {
	cells := docxml.Cells(tr)
	return len(cells) == 1 && strings.TrimSpace(docxml.CellText(cells[0])) == ""
}

// blankMergedRow builds the inserted row: a single cell spanning the full
// grid with an empty paragraph, copying row height, the source's first cell
// width and vertical-merge flag, and paragraph alignment.
func blankMergedRow(src *etree.Element, cols int) *etree.Element {
	tr := etree.NewElement("w:tr")

	if srcPr := src.SelectElement("w:trPr"); srcPr != nil {
		if height := srcPr.SelectElement("w:trHeight"); height != nil {
			trPr := tr.CreateElement("w:trPr")
			trPr.AddChild(height.Copy())
		}
	}

	tc := tr.CreateElement("w:tc")
	tcPr := tc.CreateElement("w:tcPr")

	srcCells := docxml.Cells(src)
	var srcTcPr *etree.Element
	if len(srcCells) > 0 {
		srcTcPr = srcCells[0].SelectElement("w:tcPr")
	}
	if srcTcPr != nil {
		if width := srcTcPr.SelectElement("w:tcW"); width != nil {
			tcPr.AddChild(width.Copy())
		}
	}
	if cols > 1 {
		span := tcPr.CreateElement("w:gridSpan")
		span.CreateAttr("w:val", strconv.Itoa(cols))
	}
	if srcTcPr != nil {
		if merge := srcTcPr.SelectElement("w:vMerge"); merge != nil {
			tcPr.AddChild(merge.Copy())
		}
	}
	if len(tcPr.ChildElements()) == 0 {
		tc.RemoveChild(tcPr)
	}

	para := tc.CreateElement("w:p")
	if jc := sourceAlignment(srcCells); jc != nil {
		pPr := para.CreateElement("w:pPr")
		pPr.AddChild(jc.Copy())
	}
	return tr
}

// sourceAlignment returns the w:jc of the first paragraph of the source
// row's first cell, when present.
func sourceAlignment(srcCells []*etree.Element) *etree.Element {
	if len(srcCells) == 0 {
		return nil
	}
	para := srcCells[0].SelectElement("w:p")
	if para == nil {
		return nil
	}
	pPr := para.SelectElement("w:pPr")
	if pPr == nil {
		return nil
	}
	return pPr.SelectElement("w:jc")
}

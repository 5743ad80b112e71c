package docprep

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/alnah/go-docprep/internal/docxml"
	"github.com/alnah/go-docprep/internal/docxml/docxmltest"
)

func rowTexts(t *testing.T, tbl *etree.Element) []string {
	t.Helper()
	var texts []string
	for _, tr := range docxml.Rows(tbl) {
		var cells []string
		for _, tc := range docxml.Cells(tr) {
			cells = append(cells, strings.TrimSpace(docxml.CellText(tc)))
		}
		texts = append(texts, strings.Join(cells, "|"))
	}
	return texts
}

func TestRowExpander_Expand(t *testing.T) {
	dir := t.TempDir()
	path := docxmltest.WriteFile(t, filepath.Join(dir, "plan.docx"),
		docxmltest.Table(
			docxmltest.Grid("3000", "6000"),
			docxmltest.Row(docxmltest.Cell("Step 1"), docxmltest.Cell("Restart service")),
			docxmltest.Row(docxmltest.Cell("Step 2"), docxmltest.Cell("Verify health")),
		))

	if err := NewRowExpander().Expand(path); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	tbl := openTables(t, path)[0]
	rows := docxml.Rows(tbl)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4: %v", len(rows), rowTexts(t, tbl))
	}

	// Inserted rows alternate with content rows.
	wantContent := []bool{true, false, true, false}
	for i, want := range wantContent {
		if got := docxml.RowHasContent(rows[i]); got != want {
			t.Errorf("row %d content = %v, want %v", i, got, want)
		}
	}

	// Each inserted row is one cell spanning the whole grid.
	for _, i := range []int{1, 3} {
		cells := docxml.Cells(rows[i])
		if len(cells) != 1 {
			t.Fatalf("inserted row %d has %d cells, want 1", i, len(cells))
		}
		span := cells[0].FindElement("w:tcPr/w:gridSpan")
		if span == nil || span.SelectAttrValue("w:val", "") != "2" {
			t.Errorf("inserted row %d gridSpan = %v, want 2", i, span)
		}
	}
}

func TestRowExpander_RerunSkipsBlankRows(t *testing.T) {
	dir := t.TempDir()
	path := docxmltest.WriteFile(t, filepath.Join(dir, "plan.docx"),
		docxmltest.Table(
			docxmltest.Grid("3000", "6000"),
			docxmltest.Row(docxmltest.Cell("Step 1"), docxmltest.Cell("Restart service")),
		))

	for i := 0; i < 2; i++ {
		if err := NewRowExpander().Expand(path); err != nil {
			t.Fatalf("Expand() run %d error = %v", i+1, err)
		}
	}

	// The content row gains a blank row per run; existing blank rows gain none.
	tbl := openTables(t, path)[0]
	rows := docxml.Rows(tbl)
	if len(rows) != 3 {
		t.Fatalf("got %d rows after two runs, want 3: %v", len(rows), rowTexts(t, tbl))
	}
	wantContent := []bool{true, false, false}
	for i, want := range wantContent {
		if got := docxml.RowHasContent(rows[i]); got != want {
			t.Errorf("row %d content = %v, want %v", i, got, want)
		}
	}
}

func TestRowExpander_SkipLabels(t *testing.T) {
	tests := []struct {
		name      string
		firstCell string
		wantRows  int
	}{
		{
			name:      "change request table untouched",
			firstCell: "Change request numbers",
			wantRows:  2,
		},
		{
			name:      "label matched by substring",
			firstCell: "Related Tickets and links",
			wantRows:  2,
		},
		{
			name:      "ordinary table expanded",
			firstCell: "Step",
			wantRows:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := docxmltest.WriteFile(t, filepath.Join(dir, "plan.docx"),
				docxmltest.Table(
					docxmltest.Grid("3000", "6000"),
					docxmltest.Row(docxmltest.Cell(tt.firstCell), docxmltest.Cell("one")),
					docxmltest.Row(docxmltest.Cell("more"), docxmltest.Cell("two")),
				))

			if err := NewRowExpander().Expand(path); err != nil {
				t.Fatalf("Expand() error = %v", err)
			}

			tbl := openTables(t, path)[0]
			if got := len(docxml.Rows(tbl)); got != tt.wantRows {
				t.Errorf("got %d rows, want %d", got, tt.wantRows)
			}
		})
	}
}

func TestRowExpander_CustomSkipLabels(t *testing.T) {
	dir := t.TempDir()
	path := docxmltest.WriteFile(t, filepath.Join(dir, "plan.docx"),
		docxmltest.Table(
			docxmltest.Row(docxmltest.Cell("Approvals"), docxmltest.Cell("CAB")),
		))

	e := &RowExpander{SkipLabels: []string{"Approvals"}}
	if err := e.Expand(path); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	tbl := openTables(t, path)[0]
	if got := len(docxml.Rows(tbl)); got != 1 {
		t.Errorf("got %d rows, want 1", got)
	}
}

func TestRowExpander_DeletesLeadingEmptyRow(t *testing.T) {
	dir := t.TempDir()
	path := docxmltest.WriteFile(t, filepath.Join(dir, "plan.docx"),
		docxmltest.Table(
			docxmltest.Grid(""),
			docxmltest.Row(docxmltest.Cell("")),
			docxmltest.Row(docxmltest.Cell("Step 1")),
		))

	if err := NewRowExpander().Expand(path); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	tbl := openTables(t, path)[0]
	texts := rowTexts(t, tbl)
	if len(texts) != 2 || texts[0] != "Step 1" {
		t.Errorf("rows after expand = %v, want [Step 1, blank]", texts)
	}
}

func TestRowExpander_KeepsLeadingEmptyMultiCellRow(t *testing.T) {
	dir := t.TempDir()
	path := docxmltest.WriteFile(t, filepath.Join(dir, "plan.docx"),
		docxmltest.Table(
			docxmltest.Grid("3000", "6000"),
			docxmltest.Row(docxmltest.Cell(""), docxmltest.Cell("")),
			docxmltest.Row(docxmltest.Cell("Step 1"), docxmltest.Cell("do it")),
		))

	if err := NewRowExpander().Expand(path); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	// The blank two-cell row stays, gains no blank row; the content row does.
	tbl := openTables(t, path)[0]
	if got := len(docxml.Rows(tbl)); got != 3 {
		t.Errorf("got %d rows, want 3: %v", got, rowTexts(t, tbl))
	}
}

func TestRowExpander_CopiesRowFormatting(t *testing.T) {
	dir := t.TempDir()
	path := docxmltest.WriteFile(t, filepath.Join(dir, "plan.docx"),
		docxmltest.Table(
			docxmltest.Grid("3000", "6000"),
			docxmltest.RowWith(`<w:trHeight w:val="400"/>`,
				`<w:tc><w:tcPr><w:tcW w:w="3000" w:type="dxa"/></w:tcPr>`+
					`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>Step 1</w:t></w:r></w:p></w:tc>`,
				docxmltest.Cell("do it"),
			),
		))

	if err := NewRowExpander().Expand(path); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	tbl := openTables(t, path)[0]
	rows := docxml.Rows(tbl)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	blank := rows[1]

	height := blank.FindElement("w:trPr/w:trHeight")
	if height == nil || height.SelectAttrValue("w:val", "") != "400" {
		t.Errorf("trHeight not copied: %v", height)
	}
	width := blank.FindElement("w:tc/w:tcPr/w:tcW")
	if width == nil || width.SelectAttrValue("w:w", "") != "3000" {
		t.Errorf("tcW not copied: %v", width)
	}
	jc := blank.FindElement("w:tc/w:p/w:pPr/w:jc")
	if jc == nil || jc.SelectAttrValue("w:val", "") != "center" {
		t.Errorf("paragraph alignment not copied: %v", jc)
	}
}

func TestRowExpander_SingleColumnNoGridSpan(t *testing.T) {
	dir := t.TempDir()
	path := docxmltest.WriteFile(t, filepath.Join(dir, "plan.docx"),
		docxmltest.Table(
			docxmltest.Grid(""),
			docxmltest.Row(docxmltest.Cell("only column")),
		))

	if err := NewRowExpander().Expand(path); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	tbl := openTables(t, path)[0]
	rows := docxml.Rows(tbl)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if span := rows[1].FindElement("w:tc/w:tcPr/w:gridSpan"); span != nil {
		t.Errorf("single-column blank row has gridSpan %v", span)
	}
}

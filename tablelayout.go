package docprep

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/alnah/go-docprep/internal/docxml"
)

// TableLayoutRewriter removes fixed column sizing from every table and pins
// the table itself to full width with a fixed layout algorithm. Re-running on
// an already-rewritten file yields identical metadata.
type TableLayoutRewriter struct{}

// Rewrite updates the table metadata in place.
func (TableLayoutRewriter) Rewrite(path string) error {
	pkg, err := docxml.Open(path)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}

	tables, err := pkg.Tables()
	if err != nil {
		return err
	}
	for _, tbl := range tables {
		rewriteTable(tbl)
	}

	if err := pkg.Save(); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// rewriteTable applies the sizing rules to one table and its nested cells.
func rewriteTable(tbl *etree.Element) {
	tblPr := docxml.EnsureChild(tbl, "w:tblPr")

	// Fixed layout disables auto-fit.
	layout := etree.NewElement("w:tblLayout")
	layout.CreateAttr("w:type", "fixed")
	docxml.ReplaceChild(tblPr, "w:tblLayout", layout)

	// Full width: 5000 fiftieths of a percent.
	width := etree.NewElement("w:tblW")
	width.CreateAttr("w:w", "5000")
	width.CreateAttr("w:type", "pct")
	docxml.ReplaceChild(tblPr, "w:tblW", width)

	if grid := tbl.SelectElement("w:tblGrid"); grid != nil {
		for _, col := range grid.SelectElements("w:gridCol") {
			col.RemoveAttr("w:w")
		}
	}

	// Per-cell width overrides go too, nested tables included.
	for _, tcPr := range tbl.FindElements(".//w:tc/w:tcPr") {
		if tcW := tcPr.SelectElement("w:tcW"); tcW != nil {
			tcPr.RemoveChild(tcW)
		}
	}
}

package docxml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// OOXML namespace URIs.
const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	relTypeHeader   = nsRelationships + "/header"
	ctHeader        = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
)

// SetHeaderText replaces the content of every header part with a single
// centered paragraph containing text. When the document has no header part,
// one is created and wired into the content types, the document relationships
// and the section properties.
func (p *Package) SetHeaderText(text string) error {
	headers := p.headerPartNames()
	if len(headers) == 0 {
		return p.createHeaderPart(text)
	}
	for _, name := range headers {
		doc, err := p.Part(name)
		if err != nil {
			return err
		}
		root := doc.Root()
		if root == nil {
			return fmt.Errorf("header part %s has no root element", name)
		}
		// Drop existing header content before writing the new paragraph.
		for _, child := range root.ChildElements() {
			root.RemoveChild(child)
		}
		root.AddChild(centeredParagraph(text))
	}
	return nil
}

// headerPartNames lists existing header parts (word/header*.xml).
func (p *Package) headerPartNames() []string {
	var names []string
	for _, name := range p.names {
		if strings.HasPrefix(name, "word/header") && strings.HasSuffix(name, ".xml") {
			names = append(names, name)
		}
	}
	return names
}

// centeredParagraph builds a w:p with centered alignment and the original
// header spacing (no space after, single line).
func centeredParagraph(text string) *etree.Element {
	para := etree.NewElement("w:p")
	pPr := para.CreateElement("w:pPr")
	spacing := pPr.CreateElement("w:spacing")
	spacing.CreateAttr("w:after", "0")
	spacing.CreateAttr("w:line", "240")
	spacing.CreateAttr("w:lineRule", "auto")
	jc := pPr.CreateElement("w:jc")
	jc.CreateAttr("w:val", "center")
	run := para.CreateElement("w:r")
	t := run.CreateElement("w:t")
	if text != strings.TrimSpace(text) {
		t.CreateAttr("xml:space", "preserve")
	}
	t.SetText(text)
	return para
}

// createHeaderPart adds word/header1.xml and references it from the section
// properties as the default header.
func (p *Package) createHeaderPart(text string) error {
	const partName = "word/header1.xml"

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	hdr := doc.CreateElement("w:hdr")
	hdr.CreateAttr("xmlns:w", nsMain)
	hdr.AddChild(centeredParagraph(text))
	if err := p.AddPart(partName, doc); err != nil {
		return err
	}

	if err := p.addContentTypeOverride("/"+partName, ctHeader); err != nil {
		return err
	}

	rID, err := p.addDocumentRelationship(relTypeHeader, "header1.xml")
	if err != nil {
		return err
	}

	return p.addHeaderReference(rID)
}

// addContentTypeOverride registers a part's content type.
func (p *Package) addContentTypeOverride(partName, contentType string) error {
	doc, err := p.Part(ContentTypesPart)
	if err != nil {
		return err
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("content types part has no root element")
	}
	for _, o := range root.SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == partName {
			return nil
		}
	}
	override := root.CreateElement("Override")
	override.CreateAttr("PartName", partName)
	override.CreateAttr("ContentType", contentType)
	return nil
}

// addDocumentRelationship appends a relationship to the document rels part,
// creating the part when missing. Returns the allocated relationship ID.
func (p *Package) addDocumentRelationship(relType, target string) (string, error) {
	var doc *etree.Document
	var err error
	if p.Has(DocumentRelsPart) {
		doc, err = p.Part(DocumentRelsPart)
		if err != nil {
			return "", err
		}
	} else {
		doc = etree.NewDocument()
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
		rels := doc.CreateElement("Relationships")
		rels.CreateAttr("xmlns", nsPackageRels)
		if err := p.AddPart(DocumentRelsPart, doc); err != nil {
			return "", err
		}
	}

	root := doc.Root()
	if root == nil {
		return "", fmt.Errorf("relationships part has no root element")
	}

	maxID := 0
	for _, rel := range root.SelectElements("Relationship") {
		id := rel.SelectAttrValue("Id", "")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	rID := fmt.Sprintf("rId%d", maxID+1)

	rel := root.CreateElement("Relationship")
	rel.CreateAttr("Id", rID)
	rel.CreateAttr("Type", relType)
	rel.CreateAttr("Target", target)
	return rID, nil
}

// addHeaderReference points the last section properties at the header part.
func (p *Package) addHeaderReference(rID string) error {
	body, err := p.Body()
	if err != nil {
		return err
	}

	doc, err := p.Part(MainPart)
	if err != nil {
		return err
	}
	// The r:id attribute needs the relationships namespace declared.
	if root := doc.Root(); root != nil && root.SelectAttr("xmlns:r") == nil {
		root.CreateAttr("xmlns:r", nsRelationships)
	}

	sectPr := body.SelectElement("w:sectPr")
	if sectPr == nil {
		sectPr = body.CreateElement("w:sectPr")
	}

	ref := etree.NewElement("w:headerReference")
	ref.CreateAttr("w:type", "default")
	ref.CreateAttr("r:id", rID)
	// headerReference must come before page geometry elements.
	sectPr.InsertChildAt(0, ref)
	return nil
}

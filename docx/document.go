package docx

import (
	"github.com/beevik/etree"

	"github.com/tsawler/examine/mathml"
)

// XML namespaces significant to extraction.
const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsM = "http://schemas.openxmlformats.org/officeDocument/2006/math"
	nsO = "urn:schemas-microsoft-com:office:office"
)

// Paragraph is the parsed form of one w:p block. Fragment, image,
// object, and math order each follow document order within the
// paragraph.
type Paragraph struct {
	// Fragments are the paragraph's text pieces tagged with their
	// vertical alignment. Symbol-font characters are already resolved
	// to Unicode (or a bracketed placeholder) here.
	Fragments []mathml.RunFragment

	// Images holds relationship ids of embedded pictures (a:blip
	// r:embed), in the order their drawings appear.
	Images []string

	// Objects holds relationship ids of legacy OLE equation objects
	// (o:OLEObject r:id).
	Objects []string

	// Math holds the paragraph's native math nodes (m:oMath), kept as
	// parsed elements for the math walker.
	Math []*etree.Element
}

// Text returns the paragraph's merged text with scripted runs
// reassembled into MathML.
func (p *Paragraph) Text() string {
	return mathml.MergeFragments(p.Fragments)
}

// parseParagraph builds a Paragraph from a w:p element.
func parseParagraph(el *etree.Element) Paragraph {
	var p Paragraph
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "r":
			parseRun(child, &p)
		case "hyperlink":
			for _, r := range child.SelectElements("r") {
				parseRun(r, &p)
			}
		case "oMath":
			p.Math = append(p.Math, child)
		case "oMathPara":
			p.Math = append(p.Math, child.SelectElements("oMath")...)
		}
	}
	return p
}

// parseRun appends one run's fragments and references to p. The run's
// vertical alignment is determined once and applied to every fragment
// the run contributes.
func parseRun(run *etree.Element, p *Paragraph) {
	kind := runScript(run)

	for _, child := range run.ChildElements() {
		switch child.Tag {
		case "t":
			if text := child.Text(); text != "" {
				p.Fragments = append(p.Fragments, mathml.RunFragment{Kind: kind, Text: text})
			}
		case "sym":
			font := child.SelectAttrValue("font", "")
			code := child.SelectAttrValue("char", "")
			if code == "" {
				continue
			}
			p.Fragments = append(p.Fragments, mathml.RunFragment{Kind: kind, Text: mathml.SymbolText(font, code)})
		case "drawing":
			for _, blip := range child.FindElements(".//blip") {
				if id := blip.SelectAttrValue("embed", ""); id != "" {
					p.Images = append(p.Images, id)
				}
			}
		case "object", "pict":
			for _, ole := range child.FindElements(".//OLEObject") {
				if id := ole.SelectAttrValue("id", ""); id != "" {
					p.Objects = append(p.Objects, id)
				}
			}
		}
	}
}

// runScript reads the run's w:rPr/w:vertAlign marker.
func runScript(run *etree.Element) mathml.Script {
	props := run.SelectElement("rPr")
	if props == nil {
		return mathml.Normal
	}
	va := props.SelectElement("vertAlign")
	if va == nil {
		return mathml.Normal
	}
	switch va.SelectAttrValue("val", "") {
	case "superscript":
		return mathml.Superscript
	case "subscript":
		return mathml.Subscript
	default:
		return mathml.Normal
	}
}

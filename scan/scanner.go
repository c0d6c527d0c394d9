// Package scan walks a document's paragraphs and assembles exam
// questions: boundary detection, accumulation, math and image
// conversion, and field splitting at each flush.
package scan

import (
	"fmt"
	"path"
	"strings"

	"github.com/beevik/etree"

	"github.com/tsawler/examine/docx"
	"github.com/tsawler/examine/mathml"
	"github.com/tsawler/examine/question"
)

// Warning records a non-fatal extraction issue: a skipped image, a
// failed equation conversion, an unresolvable reference. Extraction
// always continues past a warning.
type Warning struct {
	Code    string `json:"code"` // "image", "equation", "reference"
	Message string `json:"message"`
}

// Converter is the injected capability that turns a legacy equation
// blob into MathML. See the equation package for implementations.
type Converter interface {
	Convert(blob []byte) (string, error)
}

// defaultImageExt is used when a media target has no usable extension.
const defaultImageExt = ".png"

// Scanner extracts questions from one document. The zero state is
// reusable: every Run builds fresh per-extraction state, so repeated
// runs over the same document are byte-for-byte identical and
// concurrent scanners never share counters.
type Scanner struct {
	doc  *docx.Reader
	conv Converter
}

// New creates a Scanner over an opened document. conv may be nil, in
// which case legacy equation objects are skipped with a warning.
func New(doc *docx.Reader, conv Converter) *Scanner {
	return &Scanner{doc: doc, conv: conv}
}

// Run performs one full extraction pass and returns the questions in
// source order along with any warnings gathered on the way.
func (s *Scanner) Run() ([]question.Record, []Warning) {
	ex := &extraction{doc: s.doc, conv: s.conv}
	for _, p := range s.doc.Paragraphs() {
		ex.paragraph(p)
	}
	if ex.inside {
		ex.flush()
	}
	return ex.records, ex.warnings
}

// extraction is the per-run state: question buffer, scan flag, image
// counter, and the image side-table for the currently open question.
// It is created fresh for each Run and never shared.
type extraction struct {
	doc  *docx.Reader
	conv Converter

	records  []question.Record
	warnings []Warning

	buffer   []string
	inside   bool
	images   map[string][]byte // pending images for the open question
	imageSeq int
}

// paragraph applies the state transitions for one paragraph.
func (ex *extraction) paragraph(p docx.Paragraph) {
	text := strings.TrimSpace(p.Text())

	switch {
	case IsQuestionStart(text):
		if ex.inside {
			ex.flush()
		}
		ex.buffer = append(ex.buffer, text)
		ex.inside = true
	case ex.inside && text != "":
		ex.buffer = append(ex.buffer, text)
	}
	// Paragraphs before the first question start are discarded.

	if !ex.inside {
		return
	}

	// Embedded content joins the buffer in fixed order — images, then
	// legacy equation objects, then native math — matching authoring
	// order so output stays deterministic.
	for _, relID := range p.Images {
		ex.bindImage(relID)
	}
	for _, relID := range p.Objects {
		ex.convertObject(relID)
	}
	for _, node := range p.Math {
		ex.appendMath(node)
	}
}

// flush finalizes the open buffer into an immutable record.
func (ex *extraction) flush() {
	joined := strings.TrimSpace(strings.Join(ex.buffer, " "))
	rec := Split(joined)
	rec.Images = ex.images
	ex.records = append(ex.records, rec)

	ex.buffer = nil
	ex.images = nil
	ex.inside = false
}

// bindImage resolves a drawing reference, names the bytes with the
// per-extraction counter, and registers them against the currently
// open question. The question number is recomputed from the live
// buffer; without one the image has no retrievable identity and only a
// bare placeholder lands in the text.
func (ex *extraction) bindImage(relID string) {
	target, ok := ex.doc.Target(relID)
	if !ok {
		ex.warn("reference", "image relationship %s has no target", relID)
		return
	}
	data, err := ex.doc.PartBytes(target)
	if err != nil {
		ex.warn("image", "reading %s: %v", target, err)
		return
	}

	if !ex.openQuestionNumbered() {
		ex.warn("image", "image in unnumbered question dropped (%s)", target)
		ex.buffer = append(ex.buffer, "[image]")
		return
	}

	ext := strings.ToLower(path.Ext(target))
	if ext == "" {
		ext = sniffImageExt(data)
	}
	ex.imageSeq++
	filename := fmt.Sprintf("image_%d%s", ex.imageSeq, ext)

	if ex.images == nil {
		ex.images = make(map[string][]byte)
	}
	ex.images[filename] = data
	ex.buffer = append(ex.buffer, "[image: "+filename+"]")
}

// openQuestionNumbered reports whether the live buffer carries a
// parseable leading question number.
func (ex *extraction) openQuestionNumbered() bool {
	if len(ex.buffer) == 0 {
		return false
	}
	return leadingNumber.MatchString(ex.buffer[0])
}

// convertObject resolves a legacy equation object and appends its
// MathML. A single failed equation is dropped with a warning; the
// paragraph around it is unaffected.
func (ex *extraction) convertObject(relID string) {
	if ex.conv == nil {
		ex.warn("equation", "no converter configured, object %s skipped", relID)
		return
	}
	target, ok := ex.doc.Target(relID)
	if !ok {
		ex.warn("reference", "object relationship %s has no target", relID)
		return
	}
	data, err := ex.doc.PartBytes(target)
	if err != nil {
		ex.warn("equation", "reading %s: %v", target, err)
		return
	}

	out, err := safeConvert(ex.conv, data)
	if err != nil {
		ex.warn("equation", "converting %s: %v", target, err)
		return
	}
	if out != "" {
		ex.buffer = append(ex.buffer, out)
	}
}

// appendMath converts one native math node.
func (ex *extraction) appendMath(node *etree.Element) {
	if out := mathml.FromOMath(node); out != "" {
		ex.buffer = append(ex.buffer, out)
	}
}

func (ex *extraction) warn(code, format string, args ...any) {
	ex.warnings = append(ex.warnings, Warning{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// safeConvert shields the scan from a panicking converter; nothing is
// allowed to raise past the conversion boundary.
func safeConvert(conv Converter, blob []byte) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("converter panic: %v", r)
		}
	}()
	return conv.Convert(blob)
}

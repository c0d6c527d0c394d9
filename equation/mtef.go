package equation

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/examine/symbols"
)

// MTEF is the built-in Converter for MathType equation data. It
// translates the record subset the source documents actually use —
// lines, character records, and fraction/subscript/superscript
// templates — into MathML. Records outside the subset fail the whole
// conversion cleanly; the caller then drops that equation.
type MTEF struct{}

// MTEF record tags.
const (
	recEnd  = 0
	recLine = 1
	recChar = 2
	recTmpl = 3
)

// Template selectors.
const (
	tmplFract = 11
	tmplSub   = 27
	tmplSup   = 28
)

// Typeface codes carried by character records.
const (
	faceText     = 1
	faceFunction = 2
	faceVariable = 3
	faceLCGreek  = 4
	faceUCGreek  = 5
	faceSymbol   = 6
	faceVector   = 7
	faceNumber   = 8
)

// Convert translates an equation blob. Compound-file containers are
// unwrapped first; bare MTEF streams are accepted as-is.
func (MTEF) Convert(blob []byte) (string, error) {
	body := blob
	if looksLikeCompoundFile(blob) {
		stream, err := EquationStream(blob)
		if err != nil {
			return "", err
		}
		body = stream
	}

	p, err := newMtefParser(body)
	if err != nil {
		return "", err
	}
	fragment, err := p.parseList()
	if err != nil {
		return "", err
	}
	if fragment == "" {
		return "", fmt.Errorf("empty equation")
	}
	return "<math>" + fragment + "</math>", nil
}

func looksLikeCompoundFile(blob []byte) bool {
	if len(blob) < len(cfbSignature) {
		return false
	}
	for i, b := range cfbSignature {
		if blob[i] != b {
			return false
		}
	}
	return true
}

type mtefParser struct {
	data []byte
	pos  int
}

// newMtefParser validates the MTEF header and positions the cursor at
// the first record. Versions 3 and 5 are accepted; version 5 headers
// additionally carry a null-terminated application key and an options
// byte.
func newMtefParser(data []byte) (*mtefParser, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("MTEF stream too short")
	}
	version := data[0]
	if version != 3 && version != 5 {
		return nil, fmt.Errorf("unsupported MTEF version %d", version)
	}
	pos := 5 // version, platform, product, product version, subversion
	if version == 5 {
		for pos < len(data) && data[pos] != 0 {
			pos++
		}
		pos += 2 // key terminator plus equation options
	}
	if pos >= len(data) {
		return nil, fmt.Errorf("MTEF stream truncated after header")
	}
	return &mtefParser{data: data, pos: pos}, nil
}

func (p *mtefParser) byte() (byte, error) {
	if p.pos >= len(p.data) {
		return 0, fmt.Errorf("unexpected end of MTEF stream")
	}
	b := p.data[p.pos]
	p.pos++
	return b, nil
}

// parseList reads records until an END record or end of stream and
// returns the rendered MathML content.
func (p *mtefParser) parseList() (string, error) {
	var out strings.Builder
	var chars []charToken

	flush := func() {
		out.WriteString(renderChars(chars))
		chars = chars[:0]
	}

	for p.pos < len(p.data) {
		tag, _ := p.byte()
		switch tag {
		case recEnd:
			flush()
			return out.String(), nil
		case recLine:
			inner, err := p.parseList()
			if err != nil {
				return "", err
			}
			flush()
			out.WriteString(inner)
		case recChar:
			tok, err := p.parseChar()
			if err != nil {
				return "", err
			}
			chars = append(chars, tok)
		case recTmpl:
			rendered, err := p.parseTemplate()
			if err != nil {
				return "", err
			}
			flush()
			out.WriteString(rendered)
		default:
			return "", fmt.Errorf("unsupported MTEF record %d", tag)
		}
	}
	flush()
	return out.String(), nil
}

// parseTemplate reads a template's selector, variation, and slot lines.
// Fraction, subscript, and superscript templates each carry two slots.
func (p *mtefParser) parseTemplate() (string, error) {
	selector, err := p.byte()
	if err != nil {
		return "", err
	}
	if _, err := p.byte(); err != nil { // variation, unused by the subset
		return "", err
	}

	var slots []string
	for p.pos < len(p.data) && len(slots) < 2 {
		tag, _ := p.byte()
		switch tag {
		case recLine:
			slot, err := p.parseList()
			if err != nil {
				return "", err
			}
			slots = append(slots, slot)
		case recEnd:
			p.pos-- // let the caller's list see the terminator
			return renderTemplate(selector, slots)
		default:
			return "", fmt.Errorf("unexpected record %d in template", tag)
		}
	}

	// template body ends with its own END record
	if p.pos < len(p.data) && p.data[p.pos] == recEnd {
		p.pos++
	}
	return renderTemplate(selector, slots)
}

func renderTemplate(selector byte, slots []string) (string, error) {
	if len(slots) < 2 {
		return "", fmt.Errorf("template %d has %d slots, want 2", selector, len(slots))
	}
	switch selector {
	case tmplFract:
		return "<mfrac><mrow>" + slots[0] + "</mrow><mrow>" + slots[1] + "</mrow></mfrac>", nil
	case tmplSub:
		return "<msub><mrow>" + slots[0] + "</mrow><mrow>" + slots[1] + "</mrow></msub>", nil
	case tmplSup:
		return "<msup><mrow>" + slots[0] + "</mrow><mrow>" + slots[1] + "</mrow></msup>", nil
	default:
		return "", fmt.Errorf("unsupported MTEF template %d", selector)
	}
}

type charToken struct {
	face byte
	text string
}

// parseChar reads a character record: typeface byte then character
// byte. Greek and symbol faces resolve through the symbol table;
// everything else decodes as Windows-1252.
func (p *mtefParser) parseChar() (charToken, error) {
	face, err := p.byte()
	if err != nil {
		return charToken{}, err
	}
	value, err := p.byte()
	if err != nil {
		return charToken{}, err
	}

	switch face {
	case faceLCGreek, faceUCGreek, faceSymbol:
		code := fmt.Sprintf("f0%02x", value)
		if s, ok := symbols.Lookup("symbol", code); ok {
			return charToken{face: face, text: s}, nil
		}
		return charToken{}, fmt.Errorf("unknown symbol character %#02x", value)
	case faceText, faceFunction, faceVariable, faceVector, faceNumber:
		return charToken{face: face, text: string(charmap.Windows1252.DecodeByte(value))}, nil
	default:
		return charToken{}, fmt.Errorf("unsupported MTEF typeface %d", face)
	}
}

var mtefEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var mtefOperators = map[string]bool{
	"=": true, "+": true, "-": true, "×": true, "÷": true,
	"<": true, ">": true, "±": true, "≤": true, "≥": true, "≠": true,
}

// renderChars folds a run of character tokens into token elements:
// consecutive digits become one <mn>, operators become <mo>, and
// everything else one <mi> per character.
func renderChars(chars []charToken) string {
	var out strings.Builder
	var digits strings.Builder

	flushDigits := func() {
		if digits.Len() > 0 {
			out.WriteString("<mn>" + digits.String() + "</mn>")
			digits.Reset()
		}
	}

	for _, c := range chars {
		isDigit := c.face == faceNumber ||
			(len(c.text) == 1 && c.text[0] >= '0' && c.text[0] <= '9')
		if isDigit {
			digits.WriteString(c.text)
			continue
		}
		flushDigits()
		if mtefOperators[c.text] {
			out.WriteString("<mo>" + mtefEscaper.Replace(c.text) + "</mo>")
		} else {
			out.WriteString("<mi>" + mtefEscaper.Replace(c.text) + "</mi>")
		}
	}
	flushDigits()
	return out.String()
}

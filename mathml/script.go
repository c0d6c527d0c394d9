package mathml

import "strings"

// Script is the vertical alignment of a run fragment.
type Script int

const (
	// Normal text at the baseline.
	Normal Script = iota
	// Superscript text (w:vertAlign val="superscript").
	Superscript
	// Subscript text (w:vertAlign val="subscript").
	Subscript
)

// RunFragment is one tagged piece of paragraph text. Fragments are
// produced while walking a paragraph's runs and consumed immediately by
// MergeFragments; they are never persisted.
type RunFragment struct {
	Kind Script
	Text string
}

// MergeFragments reassembles a paragraph's fragment sequence into one
// text string, converting (base, script) pairs into MathML:
//
//   - a superscript fragment following normal text that ends in decimal
//     digits becomes <msup> with the trailing digits as its base, e.g.
//     "10" + superscript "-19" -> <math><msup><mn>10</mn><mn>-19</mn></msup></math>;
//   - a subscript fragment following normal text that ends in ASCII
//     letters becomes <msub> with the trailing letters as its base.
//
// The subscript value is wrapped as <mn> even when alphabetic; this
// mirrors the historical output and is pinned by test. A scripted
// fragment with no qualifying base is kept as plain literal text.
func MergeFragments(fragments []RunFragment) string {
	var out strings.Builder
	var pending string // most recent normal text, not yet emitted

	for _, f := range fragments {
		switch f.Kind {
		case Superscript:
			base, prefix, ok := splitTrailing(pending, isDigit)
			if !ok {
				pending += f.Text
				continue
			}
			out.WriteString(escape(prefix))
			out.WriteString(wrap(msup(mn(base), mn(f.Text))))
			pending = ""
		case Subscript:
			base, prefix, ok := splitTrailing(pending, isLetter)
			if !ok {
				pending += f.Text
				continue
			}
			out.WriteString(escape(prefix))
			out.WriteString(wrap(msub(mi(base), mn(f.Text))))
			pending = ""
		default:
			out.WriteString(escape(pending))
			pending = f.Text
		}
	}

	out.WriteString(escape(pending))
	return out.String()
}

// splitTrailing splits s into its longest trailing run of characters
// matching class, and the prefix before it. ok is false when s has no
// trailing match.
func splitTrailing(s string, class func(byte) bool) (tail, prefix string, ok bool) {
	i := len(s)
	for i > 0 && class(s[i-1]) {
		i--
	}
	if i == len(s) {
		return "", "", false
	}
	return s[i:], s[:i], true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

package mathml

import (
	"strings"

	"github.com/beevik/etree"
)

// operator runs that map to <mo> rather than <mi>. The asterisk is the
// keyboard spelling of multiplication and is normalized on emission.
var operators = map[string]string{
	"=": "=",
	"+": "+",
	"-": "-",
	"×": "×",
	"*": "×",
}

// FromOMath converts a native office-math node (m:oMath) to a MathML
// fragment. The node's direct children are walked in document order —
// oMath content is mixed, so sibling order is the only structure there
// is. Recognized children:
//
//	m:sSub  -> <msub>
//	m:sSup  -> <msup>
//	m:f     -> <mfrac> (numerator and denominator processed recursively)
//	m:r     -> <mo> for known operators, <mi> otherwise
//
// Unrecognized children are skipped. A walk that recognizes nothing
// yields an empty string, never an empty <math/> shell.
func FromOMath(node *etree.Element) string {
	if node == nil {
		return ""
	}
	return wrap(children(node))
}

// children renders the direct child elements of node in order.
func children(node *etree.Element) string {
	var out strings.Builder
	for _, child := range node.ChildElements() {
		out.WriteString(element(child))
	}
	return out.String()
}

func element(el *etree.Element) string {
	switch el.Tag {
	case "sSub":
		base := runText(el.SelectElement("e"))
		sub := runText(el.SelectElement("sub"))
		if base == "" && sub == "" {
			return ""
		}
		return msub(mi(base), mn(sub))
	case "sSup":
		base := runText(el.SelectElement("e"))
		sup := runText(el.SelectElement("sup"))
		if base == "" && sup == "" {
			return ""
		}
		return msup(mi(base), mn(sup))
	case "f":
		num := el.SelectElement("num")
		den := el.SelectElement("den")
		if num == nil && den == nil {
			return ""
		}
		return mfrac(fracPart(num), fracPart(den))
	case "r":
		text := runContent(el)
		if text == "" {
			return ""
		}
		if op, ok := operators[strings.TrimSpace(text)]; ok {
			return mo(op)
		}
		return mi(text)
	default:
		// Other oMath constructs (radicals, n-ary, delimiters) are not
		// produced by the source documents; skip rather than fail.
		return ""
	}
}

// fracPart renders a fraction numerator or denominator. Only subscript
// and plain-run children occur inside fractions in practice.
func fracPart(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var out strings.Builder
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "sSub", "r":
			out.WriteString(element(child))
		}
	}
	return out.String()
}

// runText extracts the concatenated m:t content beneath el's runs.
func runText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var out strings.Builder
	for _, r := range el.SelectElements("r") {
		out.WriteString(runContent(r))
	}
	return out.String()
}

// runContent extracts the m:t text of a single run.
func runContent(r *etree.Element) string {
	var out strings.Builder
	for _, t := range r.SelectElements("t") {
		out.WriteString(t.Text())
	}
	return out.String()
}

// Package mathml normalizes the three equation encodings found in exam
// documents — symbol-font character codes, native office math (m:oMath),
// and scripted text runs — into MathML fragment strings.
//
// Every conversion path shares one contract: produce a MathML fragment,
// or an empty string when there is nothing to convert. Conversion never
// panics past this package; a failed or unrecognized input degrades to
// empty or literal output.
package mathml

import (
	"strings"

	"github.com/tsawler/examine/symbols"
)

// escape replaces the characters that cannot appear literally in
// MathML text content.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

func mi(s string) string { return "<mi>" + escape(s) + "</mi>" }
func mn(s string) string { return "<mn>" + escape(s) + "</mn>" }
func mo(s string) string { return "<mo>" + escape(s) + "</mo>" }

func msub(base, script string) string {
	return "<msub>" + base + script + "</msub>"
}

func msup(base, script string) string {
	return "<msup>" + base + script + "</msup>"
}

func mfrac(num, den string) string {
	return "<mfrac><mrow>" + num + "</mrow><mrow>" + den + "</mrow></mfrac>"
}

// wrap encloses a non-empty fragment in a top-level math element.
func wrap(fragment string) string {
	if fragment == "" {
		return ""
	}
	return "<math>" + fragment + "</math>"
}

// SymbolText converts one symbol-font character reference to Unicode
// text. Unknown (font, code) pairs come back as the raw code in
// brackets so a dropped symbol stays visible in the output instead of
// vanishing silently.
func SymbolText(font, code string) string {
	if s, ok := symbols.Lookup(font, code); ok {
		return s
	}
	return "[" + code + "]"
}

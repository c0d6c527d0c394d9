// Package symbols maps symbol-font character codes to Unicode text.
//
// Word documents authored with symbol fonts carry characters as
// <w:sym w:font="Symbol" w:char="F070"/> rather than literal text. The
// table here resolves those (font, code) pairs to the Unicode strings
// they render as. Lookups are pure; the table holds no state.
package symbols

import "strings"

// codes for the classic "Symbol" font, keyed by the private-use-area
// hex value Word writes into w:char. Lowercase hex, no 0x prefix.
var symbolFont = map[string]string{
	// Greek lowercase
	"f061": "α", // alpha
	"f062": "β", // beta
	"f063": "χ", // chi
	"f064": "δ", // delta
	"f065": "ε", // epsilon
	"f066": "φ", // phi
	"f067": "γ", // gamma
	"f068": "η", // eta
	"f069": "ι", // iota
	"f06a": "ϕ", // phi (variant)
	"f06b": "κ", // kappa
	"f06c": "λ", // lambda
	"f06d": "μ", // mu
	"f06e": "ν", // nu
	"f070": "π", // pi
	"f071": "θ", // theta
	"f072": "ρ", // rho
	"f073": "σ", // sigma
	"f074": "τ", // tau
	"f075": "υ", // upsilon
	"f077": "ω", // omega
	"f078": "ξ", // xi
	"f079": "ψ", // psi
	"f07a": "ζ", // zeta

	// Greek uppercase
	"f044": "Δ", // Delta
	"f046": "Φ", // Phi
	"f047": "Γ", // Gamma
	"f04c": "Λ", // Lambda
	"f050": "Π", // Pi
	"f051": "Θ", // Theta
	"f053": "Σ", // Sigma
	"f057": "Ω", // Omega
	"f058": "Ξ", // Xi
	"f059": "Ψ", // Psi

	// Operators and relations
	"f0a3": "≤", // less-or-equal
	"f0a5": "∞", // infinity
	"f0ae": "→", // right arrow
	"f0b1": "±", // plus-minus
	"f0b3": "≥", // greater-or-equal
	"f0b4": "×", // multiplication
	"f0b8": "÷", // division
	"f0b9": "≠", // not equal
	"f0ba": "≡", // identical
	"f0bb": "≈", // approximately
	"f0bc": "…", // ellipsis
	"f0d6": "√", // square root
	"f0d7": "·", // middle dot
	"f0b0": "°", // degree
	"f0a2": "′", // prime
	"f0b6": "∂", // partial differential
	"f0d1": "∇", // nabla
	"f0ce": "∈", // element of
	"f0cf": "∉", // not element of
	"f0cd": "⊆", // subset or equal
	"f0a8": "↑", // up arrow
	"f0af": "↓", // down arrow
	"f0db": "⇔", // left-right double arrow
	"f0de": "⇒", // rightwards double arrow
	"f0e5": "∑", // n-ary sum
	"f0f2": "∫", // integral
}

// codes for "MT Extra", the auxiliary font MathType installs.
var mtExtraFont = map[string]string{
	"f026": "⌢", // frown (arc)
	"f028": "⌣", // smile (arc)
	"f03d": "ℏ", // h-bar
	"f04f": "ℴ", // script o
	"f057": "℘", // Weierstrass p
	"f061": "⇀", // rightwards harpoon
	"f062": "↽", // leftwards harpoon
	"f0ac": "←", // leftwards arrow (combining use)
	"f0ae": "→", // rightwards arrow (combining use)
	"f0d1": "⋯", // midline ellipsis
	"f0e6": "⋮", // vertical ellipsis
}

var fonts = map[string]map[string]string{
	"symbol":   symbolFont,
	"mt extra": mtExtraFont,
}

// Lookup resolves a (font, code) pair to its Unicode string. Both
// arguments are compared case-insensitively; the code must match a
// table entry exactly once normalized. The second return is false when
// the pair is unknown — the table never invents a replacement.
func Lookup(font, code string) (string, bool) {
	table, ok := fonts[strings.ToLower(strings.TrimSpace(font))]
	if !ok {
		return "", false
	}
	s, ok := table[strings.ToLower(strings.TrimSpace(code))]
	return s, ok
}

// Fonts returns the names of all supported fonts, lowercased.
func Fonts() []string {
	names := make([]string, 0, len(fonts))
	for name := range fonts {
		names = append(names, name)
	}
	return names
}

// Codes returns the supported character codes for a font, or nil if the
// font is unknown. Codes are lowercase hex as found in w:char.
func Codes(font string) []string {
	table, ok := fonts[strings.ToLower(strings.TrimSpace(font))]
	if !ok {
		return nil
	}
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	return codes
}

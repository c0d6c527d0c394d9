package symbols

import (
	"strings"
	"testing"
)

func TestLookupKnownCodes(t *testing.T) {
	tests := []struct {
		font string
		code string
		want string
	}{
		{"Symbol", "F070", "π"},
		{"Symbol", "f070", "π"},
		{"symbol", "F0B4", "×"},
		{"SYMBOL", "f0d6", "√"},
		{"MT Extra", "F03D", "ℏ"},
		{"mt extra", "f0ae", "→"},
	}

	for _, tt := range tests {
		got, ok := Lookup(tt.font, tt.code)
		if !ok {
			t.Errorf("Lookup(%q, %q): not found", tt.font, tt.code)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, want %q", tt.font, tt.code, got, tt.want)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	tests := []struct {
		font string
		code string
	}{
		{"Symbol", "ffff"},
		{"Wingdings", "f070"},
		{"", ""},
		{"Symbol", "f07"},   // prefix of a real code must not match
		{"Symbol", "f0700"}, // superstring must not match
	}

	for _, tt := range tests {
		if got, ok := Lookup(tt.font, tt.code); ok {
			t.Errorf("Lookup(%q, %q) = %q, want not found", tt.font, tt.code, got)
		}
	}
}

// Case-insensitivity must hold symmetrically for every supported pair.
func TestLookupCaseInsensitiveRoundTrip(t *testing.T) {
	for _, font := range Fonts() {
		for _, code := range Codes(font) {
			a, okA := Lookup(strings.ToUpper(font), strings.ToLower(code))
			b, okB := Lookup(strings.ToLower(font), strings.ToUpper(code))
			if !okA || !okB {
				t.Fatalf("Lookup(%q, %q): pair enumerated but not found", font, code)
			}
			if a != b {
				t.Errorf("Lookup case mismatch for (%q, %q): %q vs %q", font, code, a, b)
			}
		}
	}
}

func TestFontsEnumeration(t *testing.T) {
	fonts := Fonts()
	if len(fonts) < 2 {
		t.Fatalf("Fonts() = %v, want at least Symbol and MT Extra", fonts)
	}
	for _, f := range fonts {
		if len(Codes(f)) == 0 {
			t.Errorf("Codes(%q) is empty", f)
		}
	}
	if Codes("no-such-font") != nil {
		t.Error("Codes for unknown font should be nil")
	}
}

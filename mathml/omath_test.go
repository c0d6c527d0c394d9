package mathml

import (
	"testing"

	"github.com/beevik/etree"
)

// parseOMath builds an etree element from an m:oMath XML snippet.
func parseOMath(t *testing.T, src string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(src); err != nil {
		t.Fatalf("parsing oMath snippet: %v", err)
	}
	return doc.Root()
}

func TestFromOMathSubscript(t *testing.T) {
	node := parseOMath(t, `<m:oMath xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">
		<m:sSub>
			<m:e><m:r><m:t>v</m:t></m:r></m:e>
			<m:sub><m:r><m:t>0</m:t></m:r></m:sub>
		</m:sSub>
	</m:oMath>`)

	got := FromOMath(node)
	want := "<math><msub><mi>v</mi><mn>0</mn></msub></math>"
	if got != want {
		t.Errorf("FromOMath = %q, want %q", got, want)
	}
}

func TestFromOMathSuperscript(t *testing.T) {
	node := parseOMath(t, `<m:oMath xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">
		<m:sSup>
			<m:e><m:r><m:t>x</m:t></m:r></m:e>
			<m:sup><m:r><m:t>2</m:t></m:r></m:sup>
		</m:sSup>
	</m:oMath>`)

	got := FromOMath(node)
	want := "<math><msup><mi>x</mi><mn>2</mn></msup></math>"
	if got != want {
		t.Errorf("FromOMath = %q, want %q", got, want)
	}
}

func TestFromOMathFraction(t *testing.T) {
	node := parseOMath(t, `<m:oMath xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">
		<m:f>
			<m:num><m:r><m:t>a</m:t></m:r></m:num>
			<m:den>
				<m:sSub>
					<m:e><m:r><m:t>b</m:t></m:r></m:e>
					<m:sub><m:r><m:t>1</m:t></m:r></m:sub>
				</m:sSub>
			</m:den>
		</m:f>
	</m:oMath>`)

	got := FromOMath(node)
	want := "<math><mfrac><mrow><mi>a</mi></mrow><mrow><msub><mi>b</mi><mn>1</mn></msub></mrow></mfrac></math>"
	if got != want {
		t.Errorf("FromOMath = %q, want %q", got, want)
	}
}

func TestFromOMathOperatorRuns(t *testing.T) {
	node := parseOMath(t, `<m:oMath xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">
		<m:r><m:t>F</m:t></m:r>
		<m:r><m:t>=</m:t></m:r>
		<m:r><m:t>m</m:t></m:r>
		<m:r><m:t>*</m:t></m:r>
		<m:r><m:t>a</m:t></m:r>
	</m:oMath>`)

	got := FromOMath(node)
	want := "<math><mi>F</mi><mo>=</mo><mi>m</mi><mo>×</mo><mi>a</mi></math>"
	if got != want {
		t.Errorf("FromOMath = %q, want %q", got, want)
	}
}

func TestFromOMathSkipsUnrecognized(t *testing.T) {
	node := parseOMath(t, `<m:oMath xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">
		<m:rad><m:e><m:r><m:t>x</m:t></m:r></m:e></m:rad>
		<m:r><m:t>y</m:t></m:r>
	</m:oMath>`)

	got := FromOMath(node)
	want := "<math><mi>y</mi></math>"
	if got != want {
		t.Errorf("FromOMath = %q, want %q", got, want)
	}
}

func TestFromOMathEmpty(t *testing.T) {
	node := parseOMath(t, `<m:oMath xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"/>`)
	if got := FromOMath(node); got != "" {
		t.Errorf("FromOMath on empty node = %q, want empty string", got)
	}
	if got := FromOMath(nil); got != "" {
		t.Errorf("FromOMath(nil) = %q, want empty string", got)
	}
}

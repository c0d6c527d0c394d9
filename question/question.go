// Package question defines the records produced by exam-question extraction.
package question

// SchemaVersion identifies the JSON shape emitted for question sets.
// Bump this when the serialized field layout changes.
const SchemaVersion = "examine/v1"

// Option represents a single answer option.
type Option struct {
	Letter string `json:"letter"` // a, b, c, d
	Text   string `json:"text"`
}

// Record is one extracted exam question. Records are immutable once
// produced by a flush; mathematical content in Stem, option texts, Key
// and Hint is normalized to MathML fragments.
type Record struct {
	// Number is the question number parsed from the leading "N." prefix,
	// or nil when the prefix could not be parsed.
	Number *int `json:"number"`

	// Stem is the question text with the numbering prefix and all
	// option/key/hint marker text removed.
	Stem string `json:"stem"`

	// Options are in source order. Missing letters are simply absent.
	Options []Option `json:"options"`

	Key  *string `json:"key"`
	Hint *string `json:"hint"`

	// Images maps synthetic filenames (image_<n>.<ext>) to the raw bytes
	// of embedded pictures that appeared inside this question.
	Images map[string][]byte `json:"-"`
}

// Set is an ordered collection of extracted questions, the unit of
// serialization and packaging.
type Set struct {
	Schema    string   `json:"schema"`
	Source    string   `json:"source,omitempty"`
	Questions []Record `json:"questions"`
}

// NewSet wraps records in a versioned set.
func NewSet(source string, records []Record) *Set {
	return &Set{
		Schema:    SchemaVersion,
		Source:    source,
		Questions: records,
	}
}

// OptionText returns the text for the given option letter, if present.
func (r *Record) OptionText(letter string) (string, bool) {
	for _, o := range r.Options {
		if o.Letter == letter {
			return o.Text, true
		}
	}
	return "", false
}

// HasImages reports whether any images were bound to this question.
func (r *Record) HasImages() bool {
	return len(r.Images) > 0
}

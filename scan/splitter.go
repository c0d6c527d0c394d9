package scan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/examine/question"
)

// Marker literals and patterns of the question grammar, evaluated
// left-to-right with first-match-wins semantics.
const (
	hintMarker = "Hint:"
	keyMarker  = "Key:"
)

var (
	// questionStart anchors at the very start of trimmed paragraph
	// text: digits, period, optional whitespace, upper-case letter.
	questionStart = regexp.MustCompile(`^[0-9]+\.\s*[A-Z]`)

	// leadingNumber captures the "N." numbering prefix.
	leadingNumber = regexp.MustCompile(`^([0-9]+)\.`)

	// nextQuestion finds a question-start shape anywhere in a string;
	// used to stop a hint from swallowing the next question's text.
	nextQuestion = regexp.MustCompile(`[0-9]+\.\s?[A-Z]`)

	// optionMarker is a lowercase option letter followed by a close
	// parenthesis, e.g. "a)".
	optionMarker = regexp.MustCompile(`([a-d])\)`)
)

// IsQuestionStart reports whether trimmed paragraph text begins a new
// question. A match anywhere past the first character does not count.
func IsQuestionStart(text string) bool {
	return text != "" && questionStart.MatchString(text)
}

// Split parses one flushed buffer's joined text into a question record.
// Missing markers yield nil fields; a missing number prefix degrades to
// a nil number with the whole text treated as content. Split never
// fails: every flushed buffer produces a record.
func Split(text string) question.Record {
	var rec question.Record

	content := strings.TrimSpace(text)
	if m := leadingNumber.FindStringSubmatch(content); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			rec.Number = &n
			content = content[len(m[0]):]
		}
	}

	main := content
	if idx := strings.Index(content, hintMarker); idx >= 0 {
		main = content[:idx]
		hint := trimHint(content[idx+len(hintMarker):])
		rec.Hint = &hint
	}

	if idx := strings.Index(main, keyMarker); idx >= 0 {
		key := strings.TrimSpace(main[idx+len(keyMarker):])
		rec.Key = &key
		main = main[:idx]
	}

	rec.Stem, rec.Options = splitOptions(main)
	return rec
}

// trimHint truncates raw hint text at the first next-question shape
// found inside it, so a malformed document cannot leak one question's
// text into the previous question's hint.
func trimHint(raw string) string {
	if loc := nextQuestion.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]]
	}
	return strings.TrimSpace(raw)
}

// splitOptions peels lettered options off the option-bearing text.
// Text before the first marker is the stem; each marker owns the text
// up to the next marker or end of string. Letters keep source order.
func splitOptions(text string) (string, []question.Option) {
	matches := optionMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(text), nil
	}

	stem := strings.TrimSpace(text[:matches[0][0]])
	options := make([]question.Option, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		options = append(options, question.Option{
			Letter: text[m[2]:m[3]],
			Text:   strings.TrimSpace(text[m[1]:end]),
		})
	}
	return stem, options
}

// Package examine extracts structured exam-question records from Word
// documents: question stems, lettered options, answer keys, hints, and
// embedded images, with all mathematical content — symbol-font
// characters, native office math, and legacy equation objects —
// normalized to MathML.
//
// Basic usage:
//
//	questions, warnings, err := examine.Open("exam.docx").Questions()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", examine.FormatWarnings(warnings))
//	}
//
// With options:
//
//	set, _, err := examine.Open("exam.docx").
//	    Converter(equation.Command("eqn2mml")).
//	    Set()
//
// For lower-level access, the docx, scan, and export packages are also
// available.
package examine

import (
	"strings"

	"github.com/tsawler/examine/docx"
	"github.com/tsawler/examine/scan"
)

// Warning is a non-fatal issue recorded during extraction: a skipped
// image, a failed equation conversion, an unresolvable reference.
type Warning = scan.Warning

// FormatWarnings renders warnings as one line each for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, w.Code+": "+w.Message)
	}
	return strings.Join(lines, "\n")
}

// Open opens a Word document and returns an Extractor for fluent
// configuration. The underlying reader is closed by any terminal
// operation, or explicitly via Close().
//
// Example:
//
//	questions, warnings, err := examine.Open("exam.docx").Questions()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened docx.Reader.
// The caller keeps ownership of the reader and is responsible for
// closing it.
func FromReader(r *docx.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for scripts and
// tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustQuestions wraps a call to Questions() or Set() and panics on
// error, discarding warnings.
func MustQuestions[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

package examine

import (
	"fmt"
	"io"
	"os"

	"github.com/tsawler/examine/docx"
	"github.com/tsawler/examine/export"
	"github.com/tsawler/examine/format"
	"github.com/tsawler/examine/question"
	"github.com/tsawler/examine/scan"
)

// Extractor provides a fluent interface for extracting questions from
// Word documents. Each configuration method returns a new Extractor
// instance, making chains safe to fork and reuse.
type Extractor struct {
	// Source
	filename string

	// Reader lifecycle
	reader       *docx.Reader
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Extractor with copied options, keeping
// configuration chains immutable.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ============================================================================
// Configuration methods (chainable)
// ============================================================================

// Converter sets the legacy-equation converter. Pass nil to skip
// legacy equation objects entirely.
func (e *Extractor) Converter(conv scan.Converter) *Extractor {
	newExt := e.clone()
	newExt.options.converter = conv
	return newExt
}

// Source sets the source name recorded in exported question sets.
// Defaults to the opened filename.
func (e *Extractor) Source(name string) *Extractor {
	newExt := e.clone()
	newExt.options.source = name
	return newExt
}

// Compact disables pretty-printing in JSON export.
func (e *Extractor) Compact() *Extractor {
	newExt := e.clone()
	newExt.options.exportConfig.PrettyPrint = false
	return newExt
}

// ============================================================================
// Lifecycle
// ============================================================================

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	if f := format.Detect(e.filename); f != format.DOCX && f != format.Unknown {
		return fmt.Errorf("unsupported input format %s", f)
	}

	r, err := docx.Open(e.filename)
	if err != nil {
		return err
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases the underlying reader if this Extractor owns it. It
// is safe to call multiple times.
func (e *Extractor) Close() error {
	if e.reader != nil && e.ownsReader {
		err := e.reader.Close()
		e.reader = nil
		return err
	}
	return nil
}

// ============================================================================
// Terminal operations (execute extraction and return results)
// ============================================================================

// Questions runs the extraction and returns the question records in
// source order, plus any warnings. Warnings indicate non-fatal issues
// (a skipped image, a failed equation) where extraction succeeded but
// one detail was dropped.
//
// This is a terminal operation: it closes a reader the Extractor
// opened itself.
func (e *Extractor) Questions() ([]question.Record, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	records, warnings := scan.New(e.reader, e.options.converter).Run()
	return records, warnings, nil
}

// Set runs the extraction and wraps the results in a versioned,
// serializable question set.
func (e *Extractor) Set() (*question.Set, []Warning, error) {
	records, warnings, err := e.Questions()
	if err != nil {
		return nil, warnings, err
	}
	source := e.options.source
	if source == "" {
		source = e.filename
	}
	return question.NewSet(source, records), warnings, nil
}

// Export runs the extraction and serializes the question set to w in
// the given format.
func (e *Extractor) Export(w io.Writer, f export.Format) ([]Warning, error) {
	set, warnings, err := e.Set()
	if err != nil {
		return warnings, err
	}
	if err := export.Write(w, set, f, e.options.exportConfig); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// ExportFile runs the extraction and writes the question set to a
// file, choosing the format from the file's extension ("json", "jsonl",
// "csv", or "zip").
func (e *Extractor) ExportFile(path string) ([]Warning, error) {
	f, err := formatForPath(path)
	if err != nil {
		return nil, err
	}

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	warnings, err := e.Export(out, f)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return warnings, err
}

// Count runs the extraction and returns only the number of questions
// found.
func (e *Extractor) Count() (int, error) {
	records, _, err := e.Questions()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func formatForPath(path string) (export.Format, error) {
	for _, f := range []export.Format{export.FormatJSON, export.FormatJSONL, export.FormatCSV, export.FormatZip} {
		if ext := f.FileExtension(); len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return f, nil
		}
	}
	return 0, fmt.Errorf("cannot infer export format from %q", path)
}

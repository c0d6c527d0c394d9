// Package export serializes extracted question sets: JSON documents,
// JSON Lines, CSV, and the packaged zip-of-folders layout.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tsawler/examine/internal/json"
	"github.com/tsawler/examine/question"
)

// Format defines the available export formats.
type Format int

const (
	// FormatJSON exports one JSON document for the whole set.
	FormatJSON Format = iota
	// FormatJSONL exports one JSON object per question, one per line.
	FormatJSONL
	// FormatCSV exports a flat comma-separated table.
	FormatCSV
	// FormatZip exports the packaged zip-of-folders layout.
	FormatZip
)

// String returns a human-readable representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatCSV:
		return "csv"
	case FormatZip:
		return "zip"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format.
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatJSONL:
		return ".jsonl"
	case FormatCSV:
		return ".csv"
	case FormatZip:
		return ".zip"
	default:
		return ".txt"
	}
}

// ParseFormat maps a format name to its Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "jsonl":
		return FormatJSONL, nil
	case "csv":
		return FormatCSV, nil
	case "zip":
		return FormatZip, nil
	default:
		return 0, fmt.Errorf("unknown export format %q", name)
	}
}

// Config holds export options.
type Config struct {
	// PrettyPrint enables indentation for FormatJSON.
	PrettyPrint bool

	// IncludeHeader includes the header row in CSV exports.
	IncludeHeader bool
}

// DefaultConfig returns sensible export defaults.
func DefaultConfig() Config {
	return Config{
		PrettyPrint:   true,
		IncludeHeader: true,
	}
}

// Write serializes a question set to w in the given format. FormatZip
// requires an io.Writer just the same; the archive is streamed.
func Write(w io.Writer, set *question.Set, format Format, config Config) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, set, config)
	case FormatJSONL:
		return writeJSONL(w, set)
	case FormatCSV:
		return writeCSV(w, set, config)
	case FormatZip:
		return WriteZip(w, set)
	default:
		return fmt.Errorf("unknown export format %d", format)
	}
}

func writeJSON(w io.Writer, set *question.Set, config Config) error {
	var (
		data []byte
		err  error
	)
	if config.PrettyPrint {
		data, err = json.MarshalIndent(set, "", "  ")
	} else {
		data, err = json.Marshal(set)
	}
	if err != nil {
		return fmt.Errorf("encoding question set: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func writeJSONL(w io.Writer, set *question.Set) error {
	for i := range set.Questions {
		data, err := json.Marshal(&set.Questions[i])
		if err != nil {
			return fmt.Errorf("encoding question %d: %w", i, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// csvHeader is the fixed column layout for tabular export. Options are
// flattened to one column per letter of the option alphabet.
var csvHeader = []string{"number", "stem", "option_a", "option_b", "option_c", "option_d", "key", "hint"}

func writeCSV(w io.Writer, set *question.Set, config Config) error {
	cw := csv.NewWriter(w)
	if config.IncludeHeader {
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
	}

	for i := range set.Questions {
		rec := &set.Questions[i]
		row := []string{numberString(rec.Number), rec.Stem}
		for _, letter := range []string{"a", "b", "c", "d"} {
			text, _ := rec.OptionText(letter)
			row = append(row, text)
		}
		row = append(row, derefString(rec.Key), derefString(rec.Hint))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func numberString(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

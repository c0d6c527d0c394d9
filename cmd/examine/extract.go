package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/examine"
	"github.com/tsawler/examine/export"
	"github.com/tsawler/examine/internal/json"
)

// ExtractCmd extracts questions from one document. With no output flag
// the question set is written to stdout as JSON.
type ExtractCmd struct {
	File    string `arg:"" help:"DOCX file path" type:"existingfile"`
	Output  string `short:"o" help:"Output file; the extension picks the format (.json, .jsonl, .csv, .zip)" type:"path"`
	Source  string `help:"Source label recorded in the output (defaults to the file path)"`
	JQ      string `name:"jq" help:"Filter JSON output through a jq expression"`
	Compact bool   `help:"Emit compact JSON"`
}

func (c *ExtractCmd) Run(a *app) error {
	ex := newExtractor(a, c.File, c.Source, c.Compact)

	if c.Output != "" {
		warnings, err := ex.ExportFile(c.Output)
		logWarnings(a, warnings)
		if err != nil {
			return err
		}
		a.log.Info("wrote output", "path", c.Output)
		return nil
	}

	set, warnings, err := ex.Set()
	logWarnings(a, warnings)
	if err != nil {
		return err
	}

	var data []byte
	if c.Compact || a.file.Compact {
		data, err = json.Marshal(set)
	} else {
		data, err = json.MarshalIndent(set, "", "  ")
	}
	if err != nil {
		return err
	}

	if c.JQ != "" {
		if data, err = applyJQ(data, c.JQ); err != nil {
			return err
		}
	}

	os.Stdout.Write(data)
	fmt.Println()
	return nil
}

// PackCmd extracts questions and bundles the records with their bound
// images into a zip archive, one folder per question.
type PackCmd struct {
	File   string `arg:"" help:"DOCX file path" type:"existingfile"`
	Output string `short:"o" help:"Output zip archive (defaults to the input name with .zip)" type:"path"`
}

func (c *PackCmd) Run(a *app) error {
	out := c.Output
	if out == "" {
		out = strings.TrimSuffix(c.File, filepath.Ext(c.File)) + ".zip"
	}
	if !strings.HasSuffix(out, export.FormatZip.FileExtension()) {
		return fmt.Errorf("pack output must be a .zip archive, got %q", out)
	}

	warnings, err := newExtractor(a, c.File, "", false).ExportFile(out)
	logWarnings(a, warnings)
	if err != nil {
		return err
	}
	a.log.Info("wrote archive", "path", out)
	return nil
}

func newExtractor(a *app, file, source string, compact bool) *examine.Extractor {
	ex := examine.Open(file).Converter(a.converter())
	if source == "" {
		source = a.file.Source
	}
	if source != "" {
		ex = ex.Source(source)
	}
	if compact || a.file.Compact {
		ex = ex.Compact()
	}
	return ex
}

func logWarnings(a *app, warnings []examine.Warning) {
	for _, w := range warnings {
		a.log.Warn(w.Message, "code", w.Code)
	}
}

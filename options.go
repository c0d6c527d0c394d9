package examine

import (
	"github.com/tsawler/examine/equation"
	"github.com/tsawler/examine/export"
	"github.com/tsawler/examine/scan"
)

// ExtractOptions holds configuration for question extraction.
type ExtractOptions struct {
	// converter handles legacy equation objects. nil disables legacy
	// equation conversion (objects are skipped with a warning).
	converter scan.Converter

	// source is the name recorded in exported question sets; defaults
	// to the opened filename.
	source string

	// exportConfig controls serialization in terminal export operations.
	exportConfig export.Config
}

// defaultOptions returns the default extraction options. The built-in
// MTEF converter handles legacy equations unless the host injects its
// own.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		converter:    equation.MTEF{},
		exportConfig: export.DefaultConfig(),
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		converter:    o.converter,
		source:       o.source,
		exportConfig: o.exportConfig,
	}
}

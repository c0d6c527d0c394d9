// Package format provides input format detection for the examine library.
package format

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ZIP indicates a generic zip archive that is not a recognized
	// office container.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case ZIP:
		return ".zip"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

// DetectFromMagic checks magic bytes. DOCX containers are zip archives,
// so magic alone can only say "zip"; use DetectFromReader to tell DOCX
// from other archives.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return ZIP
	}
	return Unknown
}

// DetectFromReader inspects archive contents: a zip with a
// word/document.xml part is a Word document.
func DetectFromReader(r io.ReaderAt, size int64) Format {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return DOCX
		}
	}
	return ZIP
}

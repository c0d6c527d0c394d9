// Package docx reads the parts of a Word (Office Open XML) container
// that exam-question extraction needs: the main body's paragraphs, the
// relationship map, and raw part bytes for embedded media and objects.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"
)

const (
	documentPart = "word/document.xml"
	relsPart     = "word/_rels/document.xml.rels"
)

// Reader provides access to DOCX document content. A Reader is
// immutable for the duration of an extraction.
type Reader struct {
	file       *os.File
	files      []*zip.File
	doc        *etree.Document
	body       *etree.Element
	rels       map[string]string // relationship id -> part path
	paragraphs []Paragraph
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}
	r, err := NewReader(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// NewReader reads a DOCX container from an in-memory or already-open
// source. The caller keeps ownership of ra.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		files: zr.File,
		rels:  make(map[string]string),
	}

	// A container without a main body or relationships part yields an
	// empty document rather than an error; extraction then produces no
	// questions.
	r.parseRelationships()
	if err := r.parseDocument(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// PartBytes reads the raw bytes of a named part from the container.
func (r *Reader) PartBytes(name string) ([]byte, error) {
	for _, f := range r.files {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("part not found: %s", name)
}

// Target resolves a relationship id to a part path within the
// container. The second return is false for unknown ids.
func (r *Reader) Target(relID string) (string, bool) {
	target, ok := r.rels[relID]
	return target, ok
}

// Paragraphs returns the top-level paragraphs of the main body in
// document order. A missing body part yields an empty slice.
func (r *Reader) Paragraphs() []Paragraph {
	return r.paragraphs
}

// parseRelationships loads the body part's relationship map. Targets
// are stored resolved against the word/ directory, so they can be read
// back directly with PartBytes.
func (r *Reader) parseRelationships() {
	data, err := r.partIfPresent(relsPart)
	if data == nil || err != nil {
		return
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return
	}
	root := doc.Root()
	if root == nil {
		return
	}
	for _, rel := range root.SelectElements("Relationship") {
		id := rel.SelectAttrValue("Id", "")
		target := rel.SelectAttrValue("Target", "")
		if id == "" || target == "" {
			continue
		}
		if rel.SelectAttrValue("TargetMode", "") == "External" {
			continue
		}
		r.rels[id] = resolveTarget(target)
	}
}

// resolveTarget turns a relationship target into a container part path.
// Relative targets resolve against word/; absolute ones are taken from
// the container root.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean("word/" + target)
}

// parseDocument parses the main body and its paragraphs.
func (r *Reader) parseDocument() error {
	data, err := r.partIfPresent(documentPart)
	if err != nil {
		return err
	}
	if data == nil {
		return nil // no body part; empty document
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("parsing %s: %w", documentPart, err)
	}
	r.doc = doc

	root := doc.Root()
	if root == nil {
		return nil
	}
	r.body = root.SelectElement("body")
	if r.body == nil {
		return nil
	}

	for _, child := range r.body.ChildElements() {
		if child.Tag == "p" {
			r.paragraphs = append(r.paragraphs, parseParagraph(child))
		}
	}
	return nil
}

// partIfPresent reads a part's bytes, returning (nil, nil) when the
// part does not exist and an error only for unreadable content.
func (r *Reader) partIfPresent(name string) ([]byte, error) {
	for _, f := range r.files {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("opening part %s: %w", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, fmt.Errorf("reading part %s: %w", name, err)
			}
			return data, nil
		}
	}
	return nil, nil
}

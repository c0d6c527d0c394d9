package examine_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/examine"
	"github.com/tsawler/examine/docx"
	"github.com/tsawler/examine/export"
)

// writeExamDocx creates a small exam document on disk.
func writeExamDocx(t *testing.T, body string, extra map[string][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "exam.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}

	zw := zip.NewWriter(f)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"
  xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <w:body>` + body + `</w:body>
</w:document>`
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(document))

	for name, data := range extra {
		w, _ = zw.Create(name)
		w.Write(data)
	}
	zw.Close()
	f.Close()
	return path
}

const examBody = `
	<w:p><w:r><w:t>Physics Exam 2026</w:t></w:r></w:p>
	<w:p><w:r><w:t>1. What is inertia a) a force b) a property Key: b</w:t></w:r></w:p>
	<w:p><w:r><w:t>2. Define momentum Hint: mass times velocity</w:t></w:r></w:p>`

func TestOpenQuestions(t *testing.T) {
	path := writeExamDocx(t, examBody, nil)

	questions, warnings, err := examine.Open(path).Questions()
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings: %v", warnings)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].Key == nil || *questions[0].Key != "b" {
		t.Errorf("question 1 key = %v", questions[0].Key)
	}
	if questions[1].Hint == nil || *questions[1].Hint != "mass times velocity" {
		t.Errorf("question 2 hint = %v", questions[1].Hint)
	}
}

func TestSetCarriesSourceAndSchema(t *testing.T) {
	path := writeExamDocx(t, examBody, nil)

	set, _, err := examine.Open(path).Source("physics-2026").Set()
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if set.Schema == "" {
		t.Error("set schema missing")
	}
	if set.Source != "physics-2026" {
		t.Errorf("Source = %q", set.Source)
	}
}

func TestExportZip(t *testing.T) {
	path := writeExamDocx(t, examBody, nil)

	var buf bytes.Buffer
	if _, err := examine.Open(path).Export(&buf, export.FormatZip); err != nil {
		t.Fatalf("Export: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	found := false
	for _, f := range zr.File {
		if f.Name == "question_1/question.json" {
			found = true
		}
	}
	if !found {
		t.Error("archive missing question_1/question.json")
	}
}

func TestExportFile(t *testing.T) {
	path := writeExamDocx(t, examBody, nil)
	out := filepath.Join(t.TempDir(), "questions.json")

	if _, err := examine.Open(path).ExportFile(out); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil || len(data) == 0 {
		t.Fatalf("output file: %v", err)
	}

	if _, err := examine.Open(path).ExportFile(filepath.Join(t.TempDir(), "questions.xml")); err == nil {
		t.Error("unknown extension should fail")
	}
}

func TestFromReader(t *testing.T) {
	path := writeExamDocx(t, examBody, nil)
	r, err := docx.Open(path)
	if err != nil {
		t.Fatalf("docx.Open: %v", err)
	}
	defer r.Close()

	count, err := examine.FromReader(r).Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}

func TestOpenErrors(t *testing.T) {
	if _, _, err := examine.Open("").Questions(); err == nil {
		t.Error("empty filename should fail")
	}
	if _, _, err := examine.Open("missing.docx").Questions(); err == nil {
		t.Error("missing file should fail")
	}
	if _, _, err := examine.Open("exam.zip").Questions(); err == nil {
		t.Error("non-docx format should fail")
	}
}

func TestMustQuestions(t *testing.T) {
	path := writeExamDocx(t, examBody, nil)
	questions := examine.MustQuestions(examine.Open(path).Questions())
	if len(questions) != 2 {
		t.Errorf("got %d questions", len(questions))
	}

	defer func() {
		if recover() == nil {
			t.Error("MustQuestions should panic on error")
		}
	}()
	examine.MustQuestions(examine.Open("missing.docx").Questions())
}

package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tsawler/examine/config"
)

func testServer() *Server {
	cfg := config.Config{
		Port:           "0",
		MaxUploadBytes: 1 << 20,
		RequestTimeout: 10 * time.Second,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, cfg, nil)
}

// examDocx builds a minimal exam document archive in memory.
func examDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + body + `</w:body>
</w:document>`
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(document))
	zw.Close()
	return buf.Bytes()
}

const examBody = `
	<w:p><w:r><w:t>1. What is inertia a) a force b) a property Key: b</w:t></w:r></w:p>
	<w:p><w:r><w:t>2. Define momentum Hint: mass times velocity</w:t></w:r></w:p>`

func TestHealth(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestExtractRawBody(t *testing.T) {
	srv := testServer()
	doc := examDocx(t, examBody)

	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader(doc))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp extractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Schema == "" {
		t.Error("response missing schema")
	}
	if len(resp.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(resp.Questions))
	}
	if resp.Questions[0].Key == nil || *resp.Questions[0].Key != "b" {
		t.Errorf("question 1 key = %v", resp.Questions[0].Key)
	}
}

func TestExtractMultipart(t *testing.T) {
	srv := testServer()
	doc := examDocx(t, examBody)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("document", "exam.docx")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	fw.Write(doc)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/extract", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp extractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Source != "exam.docx" {
		t.Errorf("Source = %q", resp.Source)
	}
	if len(resp.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(resp.Questions))
	}
}

func TestExtractRejectsNonArchive(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader([]byte("plain text")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnsupportedMediaType)
	}
}

func TestExtractRejectsEmptyBody(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/extract", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExtractRejectsCorruptArchive(t *testing.T) {
	srv := testServer()
	// Correct magic, garbage payload.
	body := append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0xFF}, 64)...)

	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

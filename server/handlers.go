package server

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/tsawler/examine/docx"
	"github.com/tsawler/examine/format"
	"github.com/tsawler/examine/internal/json"
	"github.com/tsawler/examine/question"
	"github.com/tsawler/examine/scan"
)

type extractResponse struct {
	Schema    string            `json:"schema"`
	Source    string            `json:"source,omitempty"`
	Questions []question.Record `json:"questions"`
	Warnings  []scan.Warning    `json:"warnings,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleExtract accepts a DOCX document, either as a multipart form
// upload under the "document" field or as the raw request body, and
// responds with the extracted question set.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	body, name, err := s.readDocument(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if format.DetectFromMagic(body) != format.ZIP {
		s.writeError(w, http.StatusUnsupportedMediaType, errors.New("document is not a DOCX archive"))
		return
	}

	reader, err := docx.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	defer reader.Close()

	records, warnings := scan.New(reader, s.converter).Run()

	resp := extractResponse{
		Schema:    question.SchemaVersion,
		Source:    name,
		Questions: records,
		Warnings:  warnings,
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// readDocument returns the uploaded document bytes and, when known,
// the original filename. The body is capped at cfg.MaxUploadBytes.
func (s *Server) readDocument(r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.cfg.MaxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
			return nil, "", err
		}
		file, header, err := r.FormFile("document")
		if err != nil {
			return nil, "", errors.New("missing multipart field: document")
		}
		defer file.Close()
		body, err := readAll(file)
		if err != nil {
			return nil, "", err
		}
		return body, header.Filename, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", err
	}
	if len(body) == 0 {
		return nil, "", errors.New("empty request body")
	}
	return body, "", nil
}

func readAll(f multipart.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Warn("request failed", "status", status, "error", err)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

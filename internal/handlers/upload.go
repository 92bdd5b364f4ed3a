// Package handlers implements the chain server HTTP endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"chainserver/internal/contextutil"
	"chainserver/internal/example"
	"chainserver/internal/storage"
)

// MessageResponse is the body returned by the upload endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadHandler handles HTTP requests for document uploads.
type UploadHandler struct {
	example   example.Example
	documents storage.DocumentStore
	uploadDir string
}

// NewUploadHandler creates a new UploadHandler. documents may be nil when no
// upload bookkeeping is wanted.
func NewUploadHandler(ex example.Example, documents storage.DocumentStore, uploadDir string) *UploadHandler {
	return &UploadHandler{
		example:   ex,
		documents: documents,
		uploadDir: uploadDir,
	}
}

// ServeHTTP stores the uploaded file locally and hands it to the example's
// ingestion operation.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		// An upload without a filename is answered with a success-shaped
		// message, matching long-standing client expectations.
		if file != nil {
			_ = file.Close()
		}
		logger.WarnContext(ctx, "upload request without a file")
		h.writeMessage(w, http.StatusOK, "No files provided")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	storedPath, size, err := h.store(file, header.Filename)
	if err != nil {
		logger.ErrorContext(ctx, "failed to store uploaded file", "filename", header.Filename, "error", err)
		h.writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	fileName := filepath.Base(header.Filename)
	if h.documents != nil {
		if _, err := h.documents.Insert(ctx, &storage.DocumentRecord{
			Filename:   fileName,
			StoredPath: storedPath,
			SizeBytes:  size,
		}); err != nil {
			logger.WarnContext(ctx, "failed to record uploaded document", "filename", fileName, "error", err)
		}
	}

	if err := h.example.IngestDocs(ctx, storedPath, fileName); err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "filename", header.Filename, "error", err)
		h.writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.InfoContext(ctx, "document uploaded", "filename", fileName, "path", storedPath, "size", size)
	h.writeMessage(w, http.StatusOK, "File uploaded successfully")
}

// store sanitizes the filename and writes the raw bytes under the upload
// directory. On filename collision the last writer wins.
func (h *UploadHandler) store(file io.Reader, filename string) (string, int64, error) {
	name := filepath.Base(filename)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", 0, errors.New("error parsing uploaded filename")
	}

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create upload directory: %w", err)
	}

	storedPath := filepath.Join(h.uploadDir, name)
	out, err := os.Create(storedPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	size, err := io.Copy(out, file)
	if err != nil {
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return storedPath, size, nil
}

// writeMessage writes a message response with the given status code.
func (h *UploadHandler) writeMessage(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(MessageResponse{
		Message: message,
	})
}

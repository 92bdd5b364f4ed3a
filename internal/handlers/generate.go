package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"chainserver/internal/chat"
	"chainserver/internal/contextutil"
	"chainserver/internal/example"
	"chainserver/internal/vectorstore"
)

// Canned in-band error messages. The stream has already committed to a
// success status by the time a chain fails, so failures are delivered as
// stream content.
const (
	vectorStoreErrorChunk = "Error from the vector store. Please ensure you have ingested some documents. Please check chain-server logs for more details."
	chainServerErrorChunk = "Error from chain server. Please check chain-server logs for more details."
)

// GenerateHandler handles HTTP requests for answer generation.
type GenerateHandler struct {
	example example.Example
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(ex example.Example) *GenerateHandler {
	return &GenerateHandler{example: ex}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP streams the generated answer for the provided prompt.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	prompt := chat.DefaultPrompt()
	if err := json.NewDecoder(r.Body).Decode(&prompt); err != nil {
		logger.WarnContext(ctx, "invalid generate request body", "error", err)
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %s", err))
		return
	}

	query, history := prompt.SplitLastUserQuery()
	settings := prompt.Settings()

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		h.writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	var chunks <-chan string
	var err error
	if prompt.UseKnowledgeBase {
		logger.InfoContext(ctx, "knowledge base is enabled, using rag chain for response generation")
		chunks, err = h.example.RAGChain(ctx, query, history, settings)
	} else {
		chunks, err = h.example.LLMChain(ctx, query, history, settings)
	}

	if err != nil {
		var storeErr *vectorstore.Error
		if errors.As(err, &storeErr) {
			logger.ErrorContext(ctx, "vector store error in generate endpoint", "error", err)
			h.writeChunk(w, flusher, vectorStoreErrorChunk)
			return
		}
		logger.ErrorContext(ctx, "error in generate endpoint", "error", err)
		h.writeChunk(w, flusher, chainServerErrorChunk)
		return
	}

	// Forward each chunk as it is produced; stop when the producer closes
	// the channel or the client goes away.
	for {
		select {
		case chunk, open := <-chunks:
			if !open {
				return
			}
			h.writeChunk(w, flusher, chunk)
		case <-ctx.Done():
			logger.InfoContext(ctx, "client disconnected during generation")
			return
		}
	}
}

// writeChunk writes a raw text chunk and flushes it to the client.
func (h *GenerateHandler) writeChunk(w http.ResponseWriter, flusher http.Flusher, chunk string) {
	_, _ = fmt.Fprint(w, chunk)
	flusher.Flush()
}

// writeError writes an error response.
func (h *GenerateHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"chainserver/internal/chat"
	"chainserver/internal/contextutil"
	"chainserver/internal/example"
)

// errSearchNotImplemented marks an active example without the optional
// document search capability.
var errSearchNotImplemented = errors.New("example has not implemented document search")

// SearchHandler handles HTTP requests for document search.
type SearchHandler struct {
	example example.Example
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(ex example.Example) *SearchHandler {
	return &SearchHandler{example: ex}
}

// ServeHTTP returns the most relevant documents for the given search
// parameters. Any failure degrades to an empty result list; no error status
// is ever returned.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	req := chat.DefaultDocumentSearchRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.ErrorContext(ctx, "invalid document search request body", "error", err)
		h.writeResults(w, []map[string]any{})
		return
	}

	results, err := h.search(r, req)
	if err != nil {
		logger.ErrorContext(ctx, "error in document search endpoint", "content", req.Content, "error", err)
		h.writeResults(w, []map[string]any{})
		return
	}

	if results == nil {
		results = []map[string]any{}
	}
	h.writeResults(w, results)
}

func (h *SearchHandler) search(r *http.Request, req chat.DocumentSearchRequest) ([]map[string]any, error) {
	searcher, ok := h.example.(example.DocumentSearcher)
	if !ok {
		return nil, errSearchNotImplemented
	}
	return searcher.DocumentSearch(r.Context(), req.Content, req.NumDocs)
}

// writeResults writes the search results as a JSON array.
func (h *SearchHandler) writeResults(w http.ResponseWriter, results []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(results)
}

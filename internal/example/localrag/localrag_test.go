package localrag

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chainserver/internal/chat"
	"chainserver/internal/example"
	"chainserver/internal/llm"
	"chainserver/internal/vectorstore"
)

// fakeEmbedder returns a fixed vector per input text.
type fakeEmbedder struct {
	err   error
	calls [][]string
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls = append(f.calls, texts)
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

// fakeStore records upserts and serves canned search results.
type fakeStore struct {
	upserts   []vectorstore.Point
	searchRes []vectorstore.SearchResult
	searchErr error
	searchK   int
}

func (f *fakeStore) Upsert(ctx context.Context, collection string, points []vectorstore.Point) error {
	f.upserts = append(f.upserts, points...)
	return nil
}

func (f *fakeStore) Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]vectorstore.SearchResult, error) {
	f.searchK = k
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchRes, nil
}

func (f *fakeStore) Delete(ctx context.Context, collection string, ids []string) error { return nil }

func (f *fakeStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return true, nil
}

func (f *fakeStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	return nil
}

// fakeLLM records the prompt and streams canned chunks.
type fakeLLM struct {
	messages []llm.ChatMessage
	opts     llm.GenerationOptions
	chunks   []string
}

func (f *fakeLLM) StreamChat(ctx context.Context, messages []llm.ChatMessage, opts llm.GenerationOptions, callback func(chunk string) error) error {
	f.messages = messages
	f.opts = opts
	for _, chunk := range f.chunks {
		if err := callback(chunk); err != nil {
			return err
		}
	}
	return nil
}

func newTestExample(store *fakeStore, streamer *fakeLLM) *Example {
	return &Example{
		llm:        streamer,
		embedder:   &fakeEmbedder{},
		store:      store,
		collection: "documents",
		chunker:    NewChunker(),
	}
}

func collect(t *testing.T, ch <-chan string) string {
	t.Helper()
	var sb strings.Builder
	for chunk := range ch {
		sb.WriteString(chunk)
	}
	return sb.String()
}

func TestIngestDocs(t *testing.T) {
	store := &fakeStore{}
	ex := newTestExample(store, &fakeLLM{})

	path := filepath.Join(t.TempDir(), "guide.md")
	content := "# Guide\n\nHow to configure the service for production deployments and what to watch out for.\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if err := ex.IngestDocs(context.Background(), path, "guide.md"); err != nil {
		t.Fatalf("IngestDocs() error = %v", err)
	}

	if len(store.upserts) == 0 {
		t.Fatal("no points upserted")
	}
	point := store.upserts[0]
	if point.ID == "" {
		t.Error("point ID should be set")
	}
	if point.Meta["filename"] != "guide.md" {
		t.Errorf("point filename = %v, want guide.md", point.Meta["filename"])
	}
	if content, _ := point.Meta["content"].(string); !strings.Contains(content, "production") {
		t.Errorf("point content = %q, want chunk text", content)
	}
}

func TestIngestDocsMissingFile(t *testing.T) {
	ex := newTestExample(&fakeStore{}, &fakeLLM{})
	if err := ex.IngestDocs(context.Background(), "/does/not/exist", "nope.md"); err == nil {
		t.Error("IngestDocs() with missing file should fail")
	}
}

func TestLLMChainForwardsHistoryAndQuery(t *testing.T) {
	streamer := &fakeLLM{chunks: []string{"Hello ", "there"}}
	ex := newTestExample(&fakeStore{}, streamer)

	history := []chat.Message{
		{Role: "system", Content: "be brief"},
		{Role: "assistant", Content: "earlier"},
	}
	settings := chat.Settings{Temperature: 0.5, TopP: 0.9, MaxTokens: 64, Seed: 1}

	ch, err := ex.LLMChain(context.Background(), "hi", history, settings)
	if err != nil {
		t.Fatalf("LLMChain() error = %v", err)
	}
	if got := collect(t, ch); got != "Hello there" {
		t.Errorf("streamed = %q, want Hello there", got)
	}

	if len(streamer.messages) != 3 {
		t.Fatalf("LLM received %d messages, want 3", len(streamer.messages))
	}
	last := streamer.messages[len(streamer.messages)-1]
	if last.Role != "user" || last.Content != "hi" {
		t.Errorf("last message = %+v, want the user query", last)
	}
	if streamer.opts.Temperature != 0.5 || streamer.opts.MaxTokens != 64 {
		t.Errorf("generation options = %+v, want settings passed through", streamer.opts)
	}
}

func TestRAGChainGroundsPromptInRetrievedChunks(t *testing.T) {
	store := &fakeStore{
		searchRes: []vectorstore.SearchResult{
			{PointID: "p1", Score: 0.9, Meta: map[string]any{"content": "The port is 8081.", "filename": "ops.md"}},
		},
	}
	streamer := &fakeLLM{chunks: []string{"8081"}}
	ex := newTestExample(store, streamer)

	ch, err := ex.RAGChain(context.Background(), "which port?", nil, chat.Settings{})
	if err != nil {
		t.Fatalf("RAGChain() error = %v", err)
	}
	if got := collect(t, ch); got != "8081" {
		t.Errorf("streamed = %q, want 8081", got)
	}

	if store.searchK != topK {
		t.Errorf("search k = %d, want %d", store.searchK, topK)
	}
	if len(streamer.messages) == 0 || streamer.messages[0].Role != "system" {
		t.Fatal("first message should be the grounding system prompt")
	}
	if !strings.Contains(streamer.messages[0].Content, "The port is 8081.") {
		t.Errorf("system prompt missing retrieved chunk: %q", streamer.messages[0].Content)
	}
}

func TestRAGChainPropagatesStoreError(t *testing.T) {
	store := &fakeStore{
		searchErr: &vectorstore.Error{Op: "search", Err: errors.New("unavailable")},
	}
	ex := newTestExample(store, &fakeLLM{})

	_, err := ex.RAGChain(context.Background(), "q", nil, chat.Settings{})
	var storeErr *vectorstore.Error
	if !errors.As(err, &storeErr) {
		t.Errorf("RAGChain() error = %v, want *vectorstore.Error", err)
	}
}

func TestDocumentSearch(t *testing.T) {
	store := &fakeStore{
		searchRes: []vectorstore.SearchResult{
			{PointID: "p1", Score: 0.8, Meta: map[string]any{"content": "chunk one", "filename": "a.md"}},
			{PointID: "p2", Score: 0.6, Meta: map[string]any{"content": "chunk two", "filename": "b.md"}},
		},
	}
	ex := newTestExample(store, &fakeLLM{})

	results, err := ex.DocumentSearch(context.Background(), "chunks", 2)
	if err != nil {
		t.Fatalf("DocumentSearch() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0]["content"] != "chunk one" || results[0]["filename"] != "a.md" {
		t.Errorf("results[0] = %v", results[0])
	}
	if store.searchK != 2 {
		t.Errorf("search k = %d, want 2", store.searchK)
	}
}

func TestNewValidatesDeps(t *testing.T) {
	if _, err := New(example.Deps{}); err == nil {
		t.Error("New() with empty deps should fail")
	}
}

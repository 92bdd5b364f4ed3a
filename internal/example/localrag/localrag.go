// Package localrag is the built-in example: document ingestion and retrieval
// backed by Qdrant, with generation through an OpenAI-compatible LLM API.
package localrag

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"chainserver/internal/chat"
	"chainserver/internal/contextutil"
	"chainserver/internal/example"
	"chainserver/internal/llm"
	"chainserver/internal/storage"
	"chainserver/internal/vectorstore"
)

// Name is the identifier this example registers under.
const Name = "localrag"

// topK is the number of chunks retrieved for RAG context.
const topK = 4

// embedBatchSize limits how many chunks are embedded per API call.
const embedBatchSize = 16

func init() {
	example.Register(Name, New)
}

// LLMStreamer is the slice of the LLM client the chains depend on.
type LLMStreamer interface {
	StreamChat(ctx context.Context, messages []llm.ChatMessage, opts llm.GenerationOptions, callback func(chunk string) error) error
}

// Embedder is the slice of the embeddings client used here.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Example implements example.Example and example.DocumentSearcher with a
// local vector store.
type Example struct {
	llm        LLMStreamer
	embedder   Embedder
	store      vectorstore.VectorStore
	collection string
	documents  storage.DocumentStore
	chunker    *Chunker
}

// New constructs the localrag example from its dependencies.
func New(deps example.Deps) (example.Example, error) {
	if deps.LLMClient == nil {
		return nil, fmt.Errorf("localrag requires an LLM client")
	}
	if deps.Embedder == nil {
		return nil, fmt.Errorf("localrag requires an embeddings client")
	}
	if deps.VectorStore == nil {
		return nil, fmt.Errorf("localrag requires a vector store")
	}
	if deps.Collection == "" {
		return nil, fmt.Errorf("localrag requires a collection name")
	}

	return &Example{
		llm:        deps.LLMClient,
		embedder:   deps.Embedder,
		store:      deps.VectorStore,
		collection: deps.Collection,
		documents:  deps.Documents,
		chunker:    NewChunker(),
	}, nil
}

// IngestDocs chunks the stored document, embeds the chunks and upserts them
// into the vector store.
func (e *Example) IngestDocs(ctx context.Context, filePath, fileName string) error {
	logger := contextutil.LoggerFromContext(ctx)

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	chunks := e.chunker.ChunkDocument(content, fileName)
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "document produced no chunks", "filename", fileName)
		return nil
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		vectors, err := e.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed chunks: %w", err)
		}

		points := make([]vectorstore.Point, len(batch))
		for i, chunk := range batch {
			points[i] = vectorstore.Point{
				ID:  uuid.New().String(),
				Vec: vectors[i],
				Meta: map[string]any{
					"filename":    fileName,
					"chunk_index": chunk.Index,
					"section":     chunk.Section,
					"content":     chunk.Text,
				},
			}
		}

		if err := e.store.Upsert(ctx, e.collection, points); err != nil {
			return err
		}
	}

	if e.documents != nil {
		if rec, err := e.documents.GetByFilename(ctx, fileName); err == nil {
			if err := e.documents.SetChunkCount(ctx, rec.ID, len(chunks)); err != nil {
				logger.WarnContext(ctx, "failed to record chunk count", "filename", fileName, "error", err)
			}
		}
	}

	logger.InfoContext(ctx, "document ingested", "filename", fileName, "chunks", len(chunks))
	return nil
}

// LLMChain generates a reply without consulting the knowledge base.
func (e *Example) LLMChain(ctx context.Context, query string, history []chat.Message, settings chat.Settings) (<-chan string, error) {
	messages := make([]llm.ChatMessage, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, llm.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: "user", Content: query})

	return e.stream(ctx, messages, settings), nil
}

// RAGChain retrieves context for the query and generates a grounded reply.
func (e *Example) RAGChain(ctx context.Context, query string, history []chat.Message, settings chat.Settings) (<-chan string, error) {
	hits, err := e.retrieve(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.ChatMessage, 0, len(history)+2)
	messages = append(messages, llm.ChatMessage{Role: "system", Content: ragSystemPrompt(hits)})
	for _, msg := range history {
		if msg.Role == "system" {
			// The retrieval prompt replaces any client-supplied system turn.
			continue
		}
		messages = append(messages, llm.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: "user", Content: query})

	return e.stream(ctx, messages, settings), nil
}

// DocumentSearch returns the most relevant chunks for content.
func (e *Example) DocumentSearch(ctx context.Context, content string, numDocs int) ([]map[string]any, error) {
	if numDocs <= 0 {
		numDocs = chat.DefaultNumDocs
	}

	hits, err := e.retrieve(ctx, content, numDocs)
	if err != nil {
		return nil, err
	}

	results := make([]map[string]any, 0, len(hits))
	for _, hit := range hits {
		results = append(results, map[string]any{
			"content":  hit.Meta["content"],
			"filename": hit.Meta["filename"],
			"score":    hit.Score,
		})
	}
	return results, nil
}

// retrieve embeds the query and searches the vector store.
func (e *Example) retrieve(ctx context.Context, query string, k int) ([]vectorstore.SearchResult, error) {
	vectors, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return e.store.Search(ctx, e.collection, vectors[0], k, nil)
}

// stream starts generation in the background and returns the chunk channel.
// The channel is closed when generation ends; failures after the stream has
// started are logged, not surfaced.
func (e *Example) stream(ctx context.Context, messages []llm.ChatMessage, settings chat.Settings) <-chan string {
	opts := llm.GenerationOptions{
		Temperature: settings.Temperature,
		TopP:        settings.TopP,
		MaxTokens:   settings.MaxTokens,
		Seed:        settings.Seed,
		Stop:        settings.Stop,
	}

	ch := make(chan string)
	go func() {
		defer close(ch)
		err := e.llm.StreamChat(ctx, messages, opts, func(chunk string) error {
			select {
			case ch <- chunk:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "generation stream failed", "error", err)
		}
	}()
	return ch
}

// ragSystemPrompt renders the retrieved chunks into a grounding instruction.
func ragSystemPrompt(hits []vectorstore.SearchResult) string {
	prompt := "You are a helpful assistant. Answer using only the context below. " +
		"If the context does not contain the answer, say so.\n\nContext:\n"
	for _, hit := range hits {
		if content, ok := hit.Meta["content"].(string); ok {
			prompt += "---\n" + content + "\n"
		}
	}
	return prompt
}

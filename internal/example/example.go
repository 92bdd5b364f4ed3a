// Package example defines the contract for chain implementations and the
// registry that selects exactly one of them at startup.
package example

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_example.go -package=mocks chainserver/internal/example Example,DocumentSearcher

import (
	"context"

	"chainserver/internal/chat"
	"chainserver/internal/llm"
	"chainserver/internal/storage"
	"chainserver/internal/vectorstore"
)

// Example is the capability contract every chain implementation must satisfy:
// document ingestion, a retrieval-augmented chain and a plain LLM chain.
//
// Both chains return a channel of text chunks. The channel is closed when
// generation finishes; consumers forward chunks as they arrive without
// buffering. Implementations are shared across concurrent requests and must
// be safe for concurrent use.
type Example interface {
	// IngestDocs ingests the document stored at filePath into the knowledge
	// base. fileName is the original upload name.
	IngestDocs(ctx context.Context, filePath, fileName string) error

	// LLMChain generates a reply to query given the prior conversation,
	// without consulting the knowledge base.
	LLMChain(ctx context.Context, query string, history []chat.Message, settings chat.Settings) (<-chan string, error)

	// RAGChain generates a reply to query grounded in documents retrieved
	// from the knowledge base.
	RAGChain(ctx context.Context, query string, history []chat.Message, settings chat.Settings) (<-chan string, error)
}

// DocumentSearcher is an optional capability: implementations that can search
// the knowledge base directly expose it alongside Example.
type DocumentSearcher interface {
	// DocumentSearch returns up to numDocs documents relevant to content.
	// The result schema is owned by the implementation.
	DocumentSearch(ctx context.Context, content string, numDocs int) ([]map[string]any, error)
}

// Deps holds the collaborators an implementation may need. Factories pick the
// ones they use and ignore the rest.
type Deps struct {
	LLMClient   *llm.Client
	Embedder    *llm.EmbeddingsClient
	VectorStore vectorstore.VectorStore
	Collection  string
	Documents   storage.DocumentStore
}

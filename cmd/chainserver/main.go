package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"chainserver/internal/config"
	"chainserver/internal/example"
	_ "chainserver/internal/example/localrag"
	"chainserver/internal/http"
	"chainserver/internal/llm"
	"chainserver/internal/storage"
	"chainserver/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database for upload bookkeeping
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)
	documentRepo := storage.NewDocumentRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// External model clients
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Resolve the configured example. This happens exactly once; the
	// instance lives for the rest of the process.
	ex, err := example.New(cfg.ExampleName, example.Deps{
		LLMClient:   llmClient,
		Embedder:    embedder,
		VectorStore: vectorStore,
		Collection:  cfg.QdrantCollection,
		Documents:   documentRepo,
	})
	if err != nil {
		log.Fatalf("Failed to initialize example: %v", err)
	}
	slog.Info("Example initialized", "example", cfg.ExampleName)

	// Create router with dependencies
	deps := &http.Deps{
		Example:        ex,
		Documents:      documentRepo,
		VectorStore:    vectorStore,
		CollectionName: cfg.QdrantCollection,
		UploadDir:      cfg.UploadDir,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

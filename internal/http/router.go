// Package http wires the chain server endpoints onto a chi router.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"chainserver/internal/example"
	"chainserver/internal/handlers"
	"chainserver/internal/storage"
	"chainserver/internal/vectorstore"
)

// allowedOrigins are the development frontends permitted to call the API.
var allowedOrigins = []string{
	"http://localhost:3001",
	"http://localhost:6006",
}

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Example        example.Example
	Documents      storage.DocumentStore
	VectorStore    vectorstore.VectorStore
	CollectionName string
	UploadDir      string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	uploadHandler := handlers.NewUploadHandler(deps.Example, deps.Documents, deps.UploadDir)
	generateHandler := handlers.NewGenerateHandler(deps.Example)
	searchHandler := handlers.NewSearchHandler(deps.Example)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.CollectionName)

	r.Method(http.MethodPost, "/uploadDocument", uploadHandler)
	r.Method(http.MethodPost, "/generate", generateHandler)
	r.Method(http.MethodPost, "/documentSearch", searchHandler)
	r.Method(http.MethodGet, "/health", healthHandler)

	return r
}

package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks chainserver/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentRecord describes one uploaded document.
type DocumentRecord struct {
	ID         string
	Filename   string
	StoredPath string
	SizeBytes  int64
	ChunkCount int
	UploadedAt time.Time
}

// DocumentStore defines the interface for document record operations.
type DocumentStore interface {
	// Insert records a newly uploaded document and returns its ID.
	Insert(ctx context.Context, rec *DocumentRecord) (string, error)
	// SetChunkCount updates the number of chunks produced during ingestion.
	SetChunkCount(ctx context.Context, id string, count int) error
	// GetByFilename returns the most recent record for filename.
	// Returns ErrNotFound if no record exists.
	GetByFilename(ctx context.Context, filename string) (*DocumentRecord, error)
	// ListAll returns all records, newest first.
	ListAll(ctx context.Context) ([]DocumentRecord, error)
}

// DocumentRepo provides methods for document record operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert records a newly uploaded document and returns its ID.
func (r *DocumentRepo) Insert(ctx context.Context, rec *DocumentRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (id, filename, stored_path, size_bytes, chunk_count) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.Filename, rec.StoredPath, rec.SizeBytes, rec.ChunkCount,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return rec.ID, nil
}

// SetChunkCount updates the number of chunks produced during ingestion.
func (r *DocumentRepo) SetChunkCount(ctx context.Context, id string, count int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET chunk_count = ? WHERE id = ?",
		count, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update chunk count: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByFilename returns the most recent record for filename.
func (r *DocumentRepo) GetByFilename(ctx context.Context, filename string) (*DocumentRecord, error) {
	var rec DocumentRecord
	var uploadedAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, filename, stored_path, size_bytes, chunk_count, uploaded_at FROM documents WHERE filename = ? ORDER BY uploaded_at DESC LIMIT 1",
		filename,
	).Scan(&rec.ID, &rec.Filename, &rec.StoredPath, &rec.SizeBytes, &rec.ChunkCount, &uploadedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	rec.UploadedAt, err = time.Parse("2006-01-02 15:04:05", uploadedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse uploaded_at: %w", err)
	}

	return &rec, nil
}

// ListAll returns all records, newest first.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, filename, stored_path, size_bytes, chunk_count, uploaded_at FROM documents ORDER BY uploaded_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		var uploadedAtStr string
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.StoredPath, &rec.SizeBytes, &rec.ChunkCount, &uploadedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		rec.UploadedAt, err = time.Parse("2006-01-02 15:04:05", uploadedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse uploaded_at: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return records, nil
}

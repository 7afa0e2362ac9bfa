// Package store persists alignment result documents.
//
// The canonical backend is MongoDB: result documents from package resultio
// carry bson tags and store unchanged. Each saved run is identified by a
// caller-supplied run id (typically a UUID minted by the pipeline).
package store

import (
	"context"
	"time"

	"github.com/omicalign/omicalign/pkg/resultio"
)

// RunInfo summarizes a stored run without loading its rows.
type RunInfo struct {
	RunID   string         `json:"run_id" bson:"run_id"`
	Created time.Time      `json:"created" bson:"created"`
	Stats   resultio.Stats `json:"stats" bson:"stats"`
}

// Store saves and retrieves alignment result documents by run id.
type Store interface {
	// Save persists a document under runID, replacing any previous
	// document with the same id.
	Save(ctx context.Context, runID string, doc resultio.Document) error

	// Load retrieves the document stored under runID.
	Load(ctx context.Context, runID string) (resultio.Document, error)

	// List returns summaries of all stored runs, newest first.
	List(ctx context.Context) ([]RunInfo, error)

	// Delete removes the document stored under runID.
	Delete(ctx context.Context, runID string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

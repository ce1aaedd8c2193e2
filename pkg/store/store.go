// Package store keeps the history of layout runs.
//
// A [Run] records one document measured against one screen: the resulting
// placement tree, the failures isolation boundaries contained, and when it
// happened. The HTTP server saves a run for every layout request so clients
// can fetch the tree again by ID.
//
// Two implementations are provided:
//
//   - [MemoryStore] for tests and single-process use
//   - [MongoStore] backed by a MongoDB collection
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nagyist/rover-android/pkg/layout"
)

// DefaultListLimit caps ListRuns when no limit is given.
const DefaultListLimit = 50

// Run is one recorded layout pass.
type Run struct {
	ID           string            `json:"id" bson:"_id"`
	Document     string            `json:"document" bson:"document"`
	DocumentHash string            `json:"document_hash" bson:"document_hash"`
	Constraints  string            `json:"constraints" bson:"constraints"`
	Placement    *layout.Placement `json:"placement" bson:"placement"`
	Errors       []string          `json:"errors,omitempty" bson:"errors,omitempty"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	Duration     time.Duration     `json:"duration_ns" bson:"duration_ns"`
}

// NewRun returns a run with a fresh ID, stamped now. Timestamps are kept
// to the millisecond, which is what MongoDB stores.
func NewRun(document, documentHash string, c layout.Constraints, p *layout.Placement) *Run {
	r := &Run{
		ID:           uuid.NewString(),
		Document:     document,
		DocumentHash: documentHash,
		Constraints:  c.String(),
		Placement:    p,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if p != nil {
		r.Errors = p.Errors()
	}
	return r
}

// ListOptions filters ListRuns.
type ListOptions struct {
	// Document restricts the list to runs of one document name.
	Document string
	// Limit caps the number of runs returned; zero means DefaultListLimit.
	Limit int
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

// Store persists runs. Implementations are safe for concurrent use.
type Store interface {
	// SaveRun inserts run, replacing any run with the same ID.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun returns the run with the given ID, or an error with code
	// NOT_FOUND.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns runs newest first.
	ListRuns(ctx context.Context, opts ListOptions) ([]*Run, error)

	// DeleteRun removes a run. Deleting a missing run is NOT_FOUND.
	DeleteRun(ctx context.Context, id string) error

	Close() error
}

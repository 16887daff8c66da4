// Package store defines the document store abstraction behind the content
// API. A store holds named collections of JSON documents keyed by ID; it
// knows nothing about portfolio categories.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	cerrors "github.com/iamsank8/portfolio/pkg/errors"
)

// Document is a single stored record. Data is a JSON object.
type Document struct {
	ID   string          `json:"id" yaml:"id"`
	Data json.RawMessage `json:"data" yaml:"data"`
}

// Reader lists the documents of a collection. Implementations return
// documents ordered by ID and an empty slice for a missing collection.
type Reader interface {
	List(ctx context.Context, collection string) ([]Document, error)
}

// Store is the full read/write surface used by maintenance tooling.
type Store interface {
	Reader

	// Put creates or replaces documents in one batch.
	Put(ctx context.Context, collection string, docs []Document) error

	// Clear deletes every document in a collection and reports how many were removed.
	Clear(ctx context.Context, collection string) (int, error)

	// Count returns the number of documents in a collection.
	Count(ctx context.Context, collection string) (int, error)

	// Collections lists the names of collections holding at least one document.
	Collections(ctx context.Context) ([]string, error)

	Close() error
}

// NewDocument marshals v into a Document. v must encode to a JSON object.
func NewDocument(id string, v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "encode document", err)
	}
	doc := Document{ID: id, Data: data}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks that the document has an ID and a JSON object body.
func (d Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return cerrors.New(cerrors.ErrCodeInvalidRequest, "document id is required")
	}
	if strings.Contains(d.ID, "/") {
		return cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "document id must not contain '/'",
			map[string]any{"id": d.ID})
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(d.Data, &obj); err != nil {
		return cerrors.WrapWithContext(cerrors.ErrCodeInvalidRequest, "document data must be a JSON object", err,
			map[string]any{"id": d.ID})
	}
	return nil
}

// ValidateCollection rejects empty or path-like collection names.
func ValidateCollection(name string) error {
	if strings.TrimSpace(name) == "" {
		return cerrors.New(cerrors.ErrCodeInvalidRequest, "collection name is required")
	}
	if strings.ContainsAny(name, "/ ") {
		return cerrors.New(cerrors.ErrCodeInvalidRequest, fmt.Sprintf("invalid collection name %q", name))
	}
	return nil
}

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	cerrors "github.com/iamsank8/portfolio/pkg/errors"
	"github.com/iamsank8/portfolio/pkg/store"
)

// SeedResult reports how many documents were written per category.
type SeedResult map[Category]int

// SeedDocuments converts the fallback records of c into store documents.
// The record id becomes the document key; records without one get
// "<category>-<n>". createdAt and updatedAt are stamped with now.
func SeedDocuments(c Category, now time.Time) ([]store.Document, error) {
	ds, err := Fallback()
	if err != nil {
		return nil, err
	}
	records, err := ds.Records(c)
	if err != nil {
		return nil, err
	}

	stamp := now.UTC().Format(time.RFC3339)
	docs := make([]store.Document, 0, len(records))
	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "encode seed record", err)
		}
		var fields map[string]any
		if err := json.Unmarshal(b, &fields); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "decode seed record", err)
		}

		id, _ := fields["id"].(string)
		if strings.TrimSpace(id) == "" {
			id = fmt.Sprintf("%s-%d", strings.TrimSuffix(c.String(), "s"), i+1)
		}
		delete(fields, "id")
		fields["createdAt"] = stamp
		fields["updatedAt"] = stamp

		doc, err := store.NewDocument(id, fields)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Seed writes the fallback dataset of each category into s.
func Seed(ctx context.Context, s store.Store, categories []Category, now time.Time) (SeedResult, error) {
	result := SeedResult{}
	for _, c := range categories {
		docs, err := SeedDocuments(c, now)
		if err != nil {
			return result, err
		}
		if err := s.Put(ctx, c.Collection(), docs); err != nil {
			return result, cerrors.WrapWithContext(cerrors.CodeOf(err), "seed collection", err,
				map[string]any{"collection": c.Collection()})
		}
		slog.Debug("seeded collection", "collection", c.Collection(), "documents", len(docs))
		result[c] = len(docs)
	}
	return result, nil
}

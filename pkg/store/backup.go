package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	cerrors "github.com/iamsank8/portfolio/pkg/errors"
	"github.com/iamsank8/portfolio/pkg/serializer"
)

// MetadataFile names the manifest written into every backup directory.
const MetadataFile = "metadata.json"

// BackupMetadata is the manifest of a backup directory.
type BackupMetadata struct {
	Timestamp        time.Time      `json:"timestamp" yaml:"timestamp"`
	Collections      []string       `json:"collections" yaml:"collections"`
	TotalCollections int            `json:"totalCollections" yaml:"totalCollections"`
	Counts           map[string]int `json:"counts,omitempty" yaml:"counts,omitempty"`
}

// BackupDirName returns the directory name for a backup taken at t,
// e.g. backup-2024-06-01T12-00-00-000Z.
func BackupDirName(t time.Time) string {
	ts := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return "backup-" + strings.NewReplacer(":", "-", ".", "-").Replace(ts)
}

// Backup writes each collection to dir/<collection>.json as an array of
// flat records, {"id": ..., <data fields>}, followed by metadata.json.
// With no collections given every non-empty collection is backed up.
func Backup(ctx context.Context, s Store, dir string, collections []string, now time.Time) (*BackupMetadata, error) {
	if len(collections) == 0 {
		var err error
		if collections, err = s.Collections(ctx); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "create backup directory", err)
	}

	meta := &BackupMetadata{
		Timestamp:        now.UTC(),
		Collections:      slices.Clone(collections),
		TotalCollections: len(collections),
		Counts:           make(map[string]int, len(collections)),
	}

	for _, name := range collections {
		docs, err := s.List(ctx, name)
		if err != nil {
			return nil, err
		}
		records := make([]map[string]json.RawMessage, 0, len(docs))
		for _, d := range docs {
			rec, err := flatten(d)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if err := writeJSON(ctx, filepath.Join(dir, name+".json"), records); err != nil {
			return nil, err
		}
		meta.Counts[name] = len(records)
		slog.Debug("collection backed up", "collection", name, "documents", len(records))
	}

	if err := writeJSON(ctx, filepath.Join(dir, MetadataFile), meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// Restore loads a backup directory written by Backup into s and returns the
// number of documents restored per collection. Collections listed in the
// manifest without a data file are skipped.
func Restore(ctx context.Context, s Store, dir string) (map[string]int, error) {
	meta, err := serializer.FromFile[BackupMetadata](filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, cerrors.WrapWithContext(cerrors.ErrCodeNotFound, "backup metadata not found", err,
			map[string]any{"dir": dir})
	}

	restored := make(map[string]int, len(meta.Collections))
	for _, name := range meta.Collections {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			slog.Warn("skipping collection, backup file not found", "collection", name, "path", path)
			continue
		}

		records, err := serializer.FromFile[[]map[string]json.RawMessage](path)
		if err != nil {
			return restored, cerrors.WrapWithContext(cerrors.ErrCodeInvalidRequest, "read backup file", err,
				map[string]any{"collection": name})
		}
		docs := make([]Document, 0, len(*records))
		for i, rec := range *records {
			d, err := unflatten(rec)
			if err != nil {
				return restored, cerrors.WrapWithContext(cerrors.ErrCodeInvalidRequest, "invalid backup record", err,
					map[string]any{"collection": name, "index": i})
			}
			docs = append(docs, d)
		}
		if err := s.Put(ctx, name, docs); err != nil {
			return restored, err
		}
		restored[name] = len(docs)
	}
	return restored, nil
}

func writeJSON(ctx context.Context, path string, v any) error {
	w, err := serializer.NewFileWriter(serializer.FormatJSON, path)
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInternal, "create backup file", err)
	}
	if err := w.Serialize(ctx, v); err != nil {
		_ = w.Close()
		return cerrors.Wrap(cerrors.ErrCodeInternal, "write backup file", err)
	}
	if err := w.Close(); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInternal, "close backup file", err)
	}
	return nil
}

// flatten merges the document ID into its data.
func flatten(d Document) (map[string]json.RawMessage, error) {
	var rec map[string]json.RawMessage
	if err := json.Unmarshal(d.Data, &rec); err != nil {
		return nil, cerrors.WrapWithContext(cerrors.ErrCodeInternal, "decode document", err,
			map[string]any{"id": d.ID})
	}
	if rec == nil {
		rec = make(map[string]json.RawMessage, 1)
	}
	id, err := json.Marshal(d.ID)
	if err != nil {
		return nil, err
	}
	rec["id"] = id
	return rec, nil
}

// unflatten is the inverse of flatten.
func unflatten(rec map[string]json.RawMessage) (Document, error) {
	var id string
	if err := json.Unmarshal(rec["id"], &id); err != nil {
		return Document{}, cerrors.New(cerrors.ErrCodeInvalidRequest, "record id must be a string")
	}
	data := make(map[string]json.RawMessage, len(rec))
	for k, v := range rec {
		if k != "id" {
			data[k] = v
		}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Document{}, err
	}
	d := Document{ID: id, Data: raw}
	return d, d.Validate()
}

// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package firestore implements the document store on Google Cloud Firestore.
// Each collection maps to a top-level Firestore collection and each document
// keeps its Firestore document ID.
package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sort"
	"strings"

	gfs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/api/option"

	cerrors "github.com/iamsank8/portfolio/pkg/errors"
	"github.com/iamsank8/portfolio/pkg/store"
)

// Options configure the Firestore client.
type Options struct {
	// ProjectID is the Google Cloud project holding the database.
	ProjectID string

	// CredentialsFile is an optional service account key. When empty,
	// application default credentials are used.
	CredentialsFile string
}

// Store reads and writes documents in Firestore.
type Store struct {
	client *gfs.Client
}

var _ store.Store = (*Store)(nil)

// Open creates a Firestore client for the configured project.
func Open(ctx context.Context, opts Options) (*Store, error) {
	clientOpts, err := opts.clientOptions()
	if err != nil {
		return nil, err
	}

	client, err := gfs.NewClient(ctx, opts.ProjectID, clientOpts...)
	if err != nil {
		return nil, cerrors.WrapWithContext(cerrors.ErrCodeUnavailable, "create firestore client", err,
			map[string]any{"project": opts.ProjectID})
	}

	slog.Debug("firestore client initialized", "project", opts.ProjectID)
	return &Store{client: client}, nil
}

func (o Options) clientOptions() ([]option.ClientOption, error) {
	if strings.TrimSpace(o.ProjectID) == "" {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "firestore project id is required")
	}
	if o.CredentialsFile == "" {
		return nil, nil
	}
	if _, err := os.Stat(o.CredentialsFile); err != nil {
		return nil, cerrors.WrapWithContext(cerrors.ErrCodeInvalidRequest, "service account file not readable", err,
			map[string]any{"path": o.CredentialsFile})
	}
	return []option.ClientOption{option.WithCredentialsFile(o.CredentialsFile)}, nil
}

// Close releases the client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// List returns every document of a collection ordered by ID.
func (s *Store) List(ctx context.Context, collection string) ([]store.Document, error) {
	it := s.client.Collection(collection).Documents(ctx)
	defer it.Stop()

	docs := []store.Document{}
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrap("list documents", collection, err)
		}
		data, err := json.Marshal(snap.Data())
		if err != nil {
			return nil, cerrors.WrapWithContext(cerrors.ErrCodeInternal, "encode document", err,
				map[string]any{"collection": collection, "id": snap.Ref.ID})
		}
		docs = append(docs, store.Document{ID: snap.Ref.ID, Data: data})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Put writes documents with a BulkWriter, replacing existing ones.
func (s *Store) Put(ctx context.Context, collection string, docs []store.Document) error {
	if err := store.ValidateCollection(collection); err != nil {
		return err
	}

	values := make([]map[string]any, len(docs))
	for i, d := range docs {
		if err := d.Validate(); err != nil {
			return err
		}
		if err := json.Unmarshal(d.Data, &values[i]); err != nil {
			return cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "decode document "+d.ID, err)
		}
	}

	col := s.client.Collection(collection)
	bw := s.client.BulkWriter(ctx)
	jobs := make([]*gfs.BulkWriterJob, 0, len(docs))
	for i, d := range docs {
		job, err := bw.Set(col.Doc(d.ID), values[i])
		if err != nil {
			bw.End()
			return wrap("queue document "+d.ID, collection, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return wrap("write document "+docs[i].ID, collection, err)
		}
	}
	return nil
}

// Clear deletes every document in a collection.
func (s *Store) Clear(ctx context.Context, collection string) (int, error) {
	refs, err := s.refs(ctx, collection)
	if err != nil {
		return 0, err
	}
	if len(refs) == 0 {
		return 0, nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*gfs.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return 0, wrap("queue delete "+ref.ID, collection, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	deleted := 0
	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return deleted, wrap("delete document "+refs[i].ID, collection, err)
		}
		deleted++
	}
	return deleted, nil
}

// Count returns the number of documents in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	refs, err := s.refs(ctx, collection)
	if err != nil {
		return 0, err
	}
	return len(refs), nil
}

// Collections lists the root collections of the database.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	it := s.client.Collections(ctx)
	var names []string
	for {
		col, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeUnavailable, "list collections", err)
		}
		names = append(names, col.ID)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) refs(ctx context.Context, collection string) ([]*gfs.DocumentRef, error) {
	it := s.client.Collection(collection).DocumentRefs(ctx)
	var refs []*gfs.DocumentRef
	for {
		ref, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrap("list document refs", collection, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func wrap(op, collection string, err error) error {
	code := cerrors.ErrCodeUnavailable
	if errors.Is(err, context.DeadlineExceeded) || status.Code(err) == codes.DeadlineExceeded {
		code = cerrors.ErrCodeTimeout
	}
	return cerrors.WrapWithContext(code, op, err, map[string]any{
		"collection": collection,
		"store":      "firestore",
	})
}

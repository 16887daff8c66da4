package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/iamsank8/portfolio/pkg/errors"
)

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument("p1", map[string]any{"name": "Predictive Portal"})
	require.NoError(t, err)
	assert.Equal(t, "p1", doc.ID)
	assert.JSONEq(t, `{"name":"Predictive Portal"}`, string(doc.Data))

	_, err = NewDocument("p2", []string{"not", "an", "object"})
	require.Error(t, err)
	assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeInvalidRequest))
}

func TestDocumentValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{"valid", Document{ID: "a", Data: json.RawMessage(`{"x":1}`)}, false},
		{"missing id", Document{Data: json.RawMessage(`{}`)}, true},
		{"slash in id", Document{ID: "a/b", Data: json.RawMessage(`{}`)}, true},
		{"array body", Document{ID: "a", Data: json.RawMessage(`[1]`)}, true},
		{"garbage body", Document{ID: "a", Data: json.RawMessage(`{`)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	docs, err := m.List(ctx, "projects")
	require.NoError(t, err)
	assert.Empty(t, docs)

	require.NoError(t, m.Put(ctx, "projects", []Document{
		{ID: "b", Data: json.RawMessage(`{"name":"B"}`)},
		{ID: "a", Data: json.RawMessage(`{"name":"A"}`)},
	}))

	docs, err = m.List(ctx, "projects")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID, "documents are ordered by id")

	n, err := m.Count(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	names, err := m.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"projects"}, names)

	cleared, err := m.Clear(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	n, err = m.Count(ctx, "projects")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Put(ctx, "about", []Document{{ID: "me", Data: json.RawMessage(`{"a":1}`)}}))

	docs, err := m.List(ctx, "about")
	require.NoError(t, err)
	docs[0].Data[1] = 'X'

	again, err := m.List(ctx, "about")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(again[0].Data))
}

func TestMemoryErrAndCancel(t *testing.T) {
	m := NewMemory()
	boom := errors.New("unreachable")
	m.Err = boom

	_, err := m.List(context.Background(), "skills")
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.Err = nil
	_, err = m.List(ctx, "skills")
	assert.ErrorIs(t, err, context.Canceled)
}

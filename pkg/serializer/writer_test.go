package serializer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string   `json:"name"`
	Level int      `json:"level"`
	Tags  []string `json:"tags,omitempty"`
}

func TestWriter_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		contains []string
	}{
		{"json", FormatJSON, []string{`"name": "Angular"`, `"level": 95`}},
		{"yaml", FormatYAML, []string{"name: Angular", "level: 95"}},
		{"table", FormatTable, []string{"FIELD", "name", "Angular", "tags.[0]", "web"}},
		{"unknown defaults to json", Format("xml"), []string{`"name": "Angular"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(tt.format, &buf)
			if err := w.Serialize(context.Background(), sample{Name: "Angular", Level: 95, Tags: []string{"web"}}); err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestWriter_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), map[string]int{}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "<empty>" {
		t.Errorf("expected <empty>, got %q", got)
	}
}

func TestNewFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	w, err := NewFileWriter(FormatYAML, path)
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	if err := w.Serialize(context.Background(), []sample{{Name: "Go", Level: 80}}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(content), "name: Go") {
		t.Errorf("unexpected file content:\n%s", content)
	}

	if _, err := NewFileWriter(FormatJSON, "  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestFormatExtension(t *testing.T) {
	for format, want := range map[Format]string{
		FormatJSON:  ".json",
		FormatYAML:  ".yaml",
		FormatTable: ".txt",
	} {
		if got := format.Extension(); got != want {
			t.Errorf("%s.Extension() = %q, want %q", format, got, want)
		}
	}
}

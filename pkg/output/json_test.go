package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Summary.ErrorsFound != 2 {
		t.Errorf("ErrorsFound = %d, want 2", parsed.Summary.ErrorsFound)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("Entries = %d, want 2", len(parsed.Entries))
	}
	if parsed.Entries[0].ThreadID == nil || *parsed.Entries[0].ThreadID != 12 {
		t.Errorf("Entries[0].ThreadID = %v, want 12", parsed.Entries[0].ThreadID)
	}
	if parsed.Entries[1].ThreadID != nil {
		t.Errorf("Entries[1].ThreadID = %d, want nil", *parsed.Entries[1].ThreadID)
	}
	if parsed.Metadata.RunID != "test-run" {
		t.Errorf("RunID = %q, want %q", parsed.Metadata.RunID, "test-run")
	}
}

func TestJSONFormatter_Format_FieldNames(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, key := range []string{`"thread_id": 12`, `"category": "OpenIZ.Core"`, `"content": "hello world foo"`, `"errors_found": 2`} {
		if !strings.Contains(output, key) {
			t.Errorf("Output missing %s", key)
		}
	}
	if strings.Count(output, `"thread_id"`) != 1 {
		t.Error("thread_id should be omitted for entries without a thread")
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})
	report := createTestReport()

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed quietJSON
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Summary.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2", parsed.Summary.FilesScanned)
	}
	if parsed.RunID != "test-run" {
		t.Errorf("RunID = %q, want %q", parsed.RunID, "test-run")
	}
	if strings.Contains(buf.String(), "entries") {
		t.Error("Quiet output should not include entries")
	}
}

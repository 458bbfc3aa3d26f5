package console

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestConsoleLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Format: "json", Prefix: "server", Output: &buf})

	l.Info("Document created", "document_id", 4)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "Document created" {
		t.Fatalf("msg = %v", entry["msg"])
	}
	if entry["document_id"] != float64(4) {
		t.Fatalf("document_id = %v", entry["document_id"])
	}
	if entry["prefix"] != "server" {
		t.Fatalf("prefix = %v", entry["prefix"])
	}
}

func TestConsoleLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Output: &buf})
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output without Debug: %q", buf.String())
	}

	l = NewConsoleLogger(ConsoleLoggerParams{Debug: true, Output: &buf})
	l.Debug("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("debug output missing: %q", buf.String())
	}
}

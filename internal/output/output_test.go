package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type row struct {
	Rate     string `json:"bill_rate" yaml:"bill_rate"`
	Location string `json:"location" yaml:"location"`
}

// --- NewWriter ---

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []Format{FormatJSON, FormatJSONL, FormatYAML} {
		if _, err := NewWriter(&buf, format); err != nil {
			t.Errorf("NewWriter(%s) error = %v", format, err)
		}
	}

	if _, err := NewWriter(&buf, Format("xml")); err == nil {
		t.Error("NewWriter(xml) succeeded, want error")
	}
}

// --- JSON ---

func TestJSONWriter_SingleItemNotWrapped(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	if err := w.Write(row{Rate: "$75 MAX", Location: "Remote"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got row
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a bare object: %v", err)
	}
	if got.Rate != "$75 MAX" {
		t.Errorf("Rate = %q", got.Rate)
	}
}

func TestJSONWriter_MultipleItemsAsArray(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	if err := w.WriteAll([]any{row{Rate: "$70-90"}, row{Rate: "$80 MAX"}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got []row
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not an array: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

// --- JSONL ---

func TestJSONLWriter_OneLinePerItem(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf)

	items := []any{row{Rate: "$70-90"}, row{Rate: "$80 MAX"}, row{Rate: "$65"}}
	if err := w.WriteAll(items); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, line := range lines {
		var got row
		if err := json.Unmarshal([]byte(line), &got); err != nil {
			t.Errorf("line %d is not JSON: %v", i, err)
		}
	}
}

// --- YAML ---

func TestYAMLWriter_SingleItem(t *testing.T) {
	var buf bytes.Buffer
	w := NewYAMLWriter(&buf)

	if err := w.Write(row{Rate: "$75 MAX", Location: "Remote"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "bill_rate: $75 MAX") {
		t.Errorf("missing field in output:\n%s", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "-") {
		t.Errorf("single item wrapped in a sequence:\n%s", out)
	}
}

package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteJSONCompactAndPretty(t *testing.T) {
	v := map[string]any{"name": "Waffle"}

	var buf bytes.Buffer
	if err := Write(&buf, v, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"name\":\"Waffle\"}\n" {
		t.Fatalf("compact JSON wrong: %q", got)
	}

	buf.Reset()
	if err := Write(&buf, v, "", true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "  \"name\": \"Waffle\"") {
		t.Fatalf("pretty JSON wrong: %q", buf.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "x", "yaml", false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWriteTableAlignsColumns(t *testing.T) {
	tbl := Table{
		Header: []string{"ID", "NAME"},
		Rows: [][]string{
			{"food-1", "Chocolate"},
			{"food-22", "Tea"},
		},
		Footer: "page 1/1   2 total",
	}

	var buf bytes.Buffer
	if err := Write(&buf, tbl, "table", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 2 rows + footer, got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "NAME") {
		t.Fatalf("header wrong: %q", lines[0])
	}
	// Columns align: NAME starts at the same offset in every row.
	off := strings.Index(lines[0], "NAME")
	if strings.Index(lines[1], "Chocolate") != off || strings.Index(lines[2], "Tea") != off {
		t.Fatalf("columns not aligned:\n%s", buf.String())
	}
	if lines[3] != "page 1/1   2 total" {
		t.Fatalf("footer wrong: %q", lines[3])
	}
}

func TestWriteTableNonTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]int{"n": 1}, "table", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "\"n\": 1") {
		t.Fatalf("expected pretty JSON fallback, got %q", buf.String())
	}
}

package report

import (
	"bytes"
	"strings"
	"testing"

	"dumon/internal/tree"
)

func TestWriteRowRawFormat(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false, nil)
	w.WriteRow(tree.Row{Path: "r", Count: 3, Size: 35})

	got := buf.String()
	if !strings.HasSuffix(got, "r\n") {
		t.Fatalf("WriteRow output = %q, want it to end with path r", got)
	}
	fields := strings.Fields(got)
	if len(fields) != 3 || fields[0] != "3" || fields[1] != "35" || fields[2] != "r" {
		t.Fatalf("WriteRow fields = %v, want [3 35 r]", fields)
	}
}

func TestWriteRowHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, true, nil)
	w.WriteRow(tree.Row{Path: "r", Count: 1, Size: 1024})

	if !strings.Contains(buf.String(), "1.0K") {
		t.Fatalf("WriteRow with human=true = %q, want it to contain 1.0K", buf.String())
	}
}

func TestHeaderTemplatesMatchRowTemplates(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false, nil)
	w.Header(false)
	w.WriteRow(tree.Row{Path: "r", Count: 3, Size: 35})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want a header and a row", len(lines))
	}
	if len(strings.Fields(lines[0])) != len(strings.Fields(lines[1])) {
		t.Fatalf("header field count does not match row field count: %q vs %q", lines[0], lines[1])
	}
}

func TestWriteUserRowFallsBackToNumericUID(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false, nil)
	w.WriteUserRow(tree.UserRow{Path: "r", UID: 1000, Count: 1, Size: 10})

	fields := strings.Fields(buf.String())
	if len(fields) != 4 || fields[0] != "1000" {
		t.Fatalf("WriteUserRow fields = %v, want uid 1000 as the first field with no userdb.DB", fields)
	}
}

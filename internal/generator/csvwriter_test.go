package generator

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCSVWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()

	w, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: dir,
		Filename:  "roundtrip",
		Headers:   []string{"id", "name", "amount"},
	})
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	rows := [][]string{
		{"1", "alpha", "10.500000"},
		{"2", "with,comma", "-3.250000"},
		{"3", `with "quotes"`, "0.000000"},
	}
	if err := w.WriteRow(rows[0]); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := w.WriteRows(rows[1:]); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := w.RowCount(); got != 3 {
		t.Errorf("RowCount = %d, want 3", got)
	}

	wantPath := filepath.Join(dir, "roundtrip.csv")
	if w.Path() != wantPath {
		t.Errorf("Path = %q, want %q", w.Path(), wantPath)
	}

	f, err := os.Open(wantPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4 (header + 3 rows)", len(records))
	}
	for i, want := range [][]string{{"id", "name", "amount"}} {
		for j, col := range want {
			if records[i][j] != col {
				t.Errorf("header[%d] = %q, want %q", j, records[i][j], col)
			}
		}
	}
	for i, want := range rows {
		got := records[i+1]
		if len(got) != len(want) {
			t.Fatalf("row %d has %d columns, want %d", i, len(got), len(want))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("row %d col %d = %q, want %q", i, j, got[j], want[j])
			}
		}
	}
}

func TestCSVWriterClosedWriterRejectsRows(t *testing.T) {
	w, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: t.TempDir(),
		Filename:  "closed",
		Headers:   []string{"a"},
	})
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if err := w.WriteRow([]string{"x"}); err == nil {
		t.Error("WriteRow on closed writer should fail")
	}
}

func TestFormatters(t *testing.T) {
	if got := FormatBool(true); got != "1" {
		t.Errorf("FormatBool(true) = %q, want 1", got)
	}
	if got := FormatBool(false); got != "0" {
		t.Errorf("FormatBool(false) = %q, want 0", got)
	}
	if got := FormatFloat64(1.0 / 3.0); got != "0.333333" {
		t.Errorf("FormatFloat64(1/3) = %q, want 0.333333", got)
	}

	d := time.Date(2022, time.March, 31, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2022-03-31" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDatePtr(nil); got != "" {
		t.Errorf("FormatDatePtr(nil) = %q, want empty", got)
	}
	if got := FormatDatePtr(&d); got != "2022-03-31" {
		t.Errorf("FormatDatePtr = %q", got)
	}
}

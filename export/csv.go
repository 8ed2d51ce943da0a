package export

import (
	"encoding/csv"
	"strings"
)

// RenderCSV serializes a header and rows to CSV text with standard RFC 4180
// quoting. Output is deterministic for identical input.
func RenderCSV(header []string, rows [][]string) string {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	// Writes to a strings.Builder cannot fail, so the writer errors are
	// ignored here.
	w.Write(header)
	w.WriteAll(rows) // flushes
	return buf.String()
}

// ParsePreview re-reads rendered CSV into rows for the preview table. A
// trailing newline is tolerated.
func ParsePreview(csvText string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(csvText))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

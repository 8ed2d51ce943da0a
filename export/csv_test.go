package export

import (
	"encoding/csv"
	"reflect"
	"strings"
	"testing"
)

func TestRenderCSVBasic(t *testing.T) {
	got := RenderCSV([]string{"Product ID", "Name"}, [][]string{
		{"1", "Widget"},
		{"2", "Gadget"},
	})
	want := "Product ID,Name\n1,Widget\n2,Gadget\n"
	if got != want {
		t.Errorf("RenderCSV = %q, want %q", got, want)
	}
}

func TestRenderCSVIdempotent(t *testing.T) {
	header := []string{"Name", "Description"}
	rows := [][]string{{"Widget", "A \"useful\" thing, really"}}

	first := RenderCSV(header, rows)
	second := RenderCSV(header, rows)
	if first != second {
		t.Errorf("rendering twice differs:\n%q\n%q", first, second)
	}
}

func TestRenderCSVQuotingRoundTrip(t *testing.T) {
	tricky := []string{
		"plain",
		"has,comma",
		`has "quotes"`,
		"has\nnewline",
		`all, of "it"` + "\ntogether",
	}
	header := []string{"a", "b", "c", "d", "e"}

	rendered := RenderCSV(header, [][]string{tricky})

	records, err := csv.NewReader(strings.NewReader(rendered)).ReadAll()
	if err != nil {
		t.Fatalf("re-parsing rendered CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if !reflect.DeepEqual(records[1], tricky) {
		t.Errorf("round trip produced %v, want %v", records[1], tricky)
	}
}

func TestParsePreview(t *testing.T) {
	rows, err := ParsePreview("a,b\n1,2\n")
	if err != nil {
		t.Fatalf("ParsePreview: %v", err)
	}
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}

	// No trailing newline is tolerated too.
	rows, err = ParsePreview("a,b\n1,2")
	if err != nil {
		t.Fatalf("ParsePreview without trailing newline: %v", err)
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

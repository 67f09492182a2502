package csv

import (
	"testing"

	"tabular/internal/fault"
)

/*
TestParse_Basic checks the happy path: first line becomes the header,
fields are trimmed, and each data row maps header name to value.
*/
func TestParse_Basic(t *testing.T) {
	raw := []byte("name,salary,address,gpa,school\nAlice, 50000 ,123 Main St,3.8,State University\n")

	header, recs, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"name", "salary", "address", "gpa", "school"}
	if len(header) != len(want) {
		t.Fatalf("header=%v", header)
	}
	for i, h := range want {
		if header[i] != h {
			t.Fatalf("header[%d]=%q want %q", i, header[i], h)
		}
	}
	if len(recs) != 1 {
		t.Fatalf("rows=%d want 1", len(recs))
	}
	if recs[0]["salary"] != "50000" {
		t.Fatalf("salary=%q; want trimmed value", recs[0]["salary"])
	}
	if recs[0]["school"] != "State University" {
		t.Fatalf("school=%q", recs[0]["school"])
	}
}

// TestParse_BOMAndBlankLines: a UTF-8 BOM on the first header cell is
// stripped, and fully blank lines (trailing or interior) are skipped.
func TestParse_BOMAndBlankLines(t *testing.T) {
	raw := []byte("\uFEFFname,score\nAlice,1\n,\n\nBob,2\n\n")

	header, recs, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if header[0] != "name" {
		t.Fatalf("header[0]=%q; BOM not stripped", header[0])
	}
	if len(recs) != 2 {
		t.Fatalf("rows=%d want 2 (blank lines skipped)", len(recs))
	}
	if recs[1]["name"] != "Bob" {
		t.Fatalf("recs[1]=%v", recs[1])
	}
}

// TestParse_RaggedRows: short rows pad missing trailing fields with empty
// strings; long rows drop fields beyond the header width.
func TestParse_RaggedRows(t *testing.T) {
	raw := []byte("a,b,c\n1,2\n1,2,3,4\n")

	header, recs, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(header) != 3 || len(recs) != 2 {
		t.Fatalf("header=%v rows=%d", header, len(recs))
	}
	if recs[0]["c"] != "" {
		t.Fatalf("short row: c=%q want empty", recs[0]["c"])
	}
	if _, ok := recs[1]["d"]; ok {
		t.Fatal("long row leaked an undeclared column")
	}
	if recs[1]["c"] != "3" {
		t.Fatalf("long row: c=%q want 3", recs[1]["c"])
	}
}

// TestParse_InvalidUTF8: undecodable bytes are replaced, not fatal.
func TestParse_InvalidUTF8(t *testing.T) {
	raw := []byte("name\n\xff\xfe\n")

	_, recs, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("rows=%d want 1", len(recs))
	}
	if recs[0]["name"] == "" {
		t.Fatal("replaced value dropped entirely")
	}
}

// TestParse_Errors: empty input and header-only input fail as ParseError;
// a header-only file still parses (zero rows) since row-count policy
// belongs to validation, not parsing.
func TestParse_Errors(t *testing.T) {
	if _, _, err := Parse(nil); !fault.Is(err, fault.ParseError) {
		t.Fatalf("empty input: err=%v want ParseError", err)
	}

	header, recs, err := Parse([]byte("name,salary\n"))
	if err != nil {
		t.Fatalf("header-only: %v", err)
	}
	if len(header) != 2 || len(recs) != 0 {
		t.Fatalf("header=%v rows=%d", header, len(recs))
	}
}

// TestParse_QuotedFields: commas and doubled quotes inside quoted fields
// survive.
func TestParse_QuotedFields(t *testing.T) {
	raw := []byte("name,address\n\"Doe, John\",\"12 \"\"A\"\" St\"\n")

	_, recs, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if recs[0]["name"] != "Doe, John" {
		t.Fatalf("name=%q", recs[0]["name"])
	}
	if recs[0]["address"] != `12 "A" St` {
		t.Fatalf("address=%q", recs[0]["address"])
	}
}

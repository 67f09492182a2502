package excel

import "testing"

// refHeader returns a copy of ReferenceHeader for mutation in tests.
func refHeader() []string {
	out := make([]string, len(ReferenceHeader))
	copy(out, ReferenceHeader)
	return out
}

func TestMatchesReferenceHeader(t *testing.T) {
	if !MatchesReferenceHeader(refHeader()) {
		t.Fatal("exact copy should match")
	}

	padded := refHeader()
	padded[0] = "  " + padded[0] + "\t"
	if !MatchesReferenceHeader(padded) {
		t.Fatal("per-cell trimming should still match")
	}

	short := refHeader()[:19]
	if MatchesReferenceHeader(short) {
		t.Fatal("length mismatch must not match")
	}

	placeholder := refHeader()
	placeholder[17] = "x" // the blank placeholder must stay blank
	if MatchesReferenceHeader(placeholder) {
		t.Fatal("non-blank placeholder must not match")
	}

	swapped := refHeader()
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if MatchesReferenceHeader(swapped) {
		t.Fatal("order matters")
	}
}

/*
TestIsEmpty covers the scan-start rules: header-only sheets are empty once
the header is skipped; a reference-template header additionally skips the
preamble row below it; with skipHeader=false every cell counts, so a
header-only sheet is non-empty.
*/
func TestIsEmpty(t *testing.T) {
	plainHeaderOnly := &Sheet{Rows: [][]string{{"name", "salary"}}}
	if !IsEmpty(plainHeaderOnly, true) {
		t.Fatal("header-only sheet should be empty with skipHeader")
	}
	if IsEmpty(plainHeaderOnly, false) {
		t.Fatal("header cells count when skipHeader=false")
	}

	withData := &Sheet{Rows: [][]string{
		{"name", "salary"},
		{"", "  "},
		{"", "Alice"},
	}}
	if IsEmpty(withData, true) {
		t.Fatal("sheet with a non-blank cell is not empty")
	}

	whitespaceOnly := &Sheet{Rows: [][]string{
		{"name", "salary"},
		{" ", "\t"},
		nil,
	}}
	if !IsEmpty(whitespaceOnly, true) {
		t.Fatal("whitespace-only cells do not count as data")
	}

	templateWithPreamble := &Sheet{Rows: [][]string{
		refHeader(),
		{"preamble", "row", "ignored"},
	}}
	if !IsEmpty(templateWithPreamble, true) {
		t.Fatal("reference header skips one extra row")
	}

	templateWithData := &Sheet{Rows: [][]string{
		refHeader(),
		{"preamble"},
		{"", "", "real data"},
	}}
	if IsEmpty(templateWithData, true) {
		t.Fatal("data below the preamble still counts")
	}

	nonTemplate := &Sheet{Rows: [][]string{
		{"some", "other", "header"},
		{"second row data"},
	}}
	if IsEmpty(nonTemplate, true) {
		t.Fatal("non-template header skips only itself")
	}

	empty := &Sheet{Rows: nil}
	if !IsEmpty(empty, true) || !IsEmpty(empty, false) {
		t.Fatal("sheet with no rows is empty either way")
	}
}

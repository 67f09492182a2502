// Package records defines the row type passed between parser, validator and
// sink. A Record maps column name to the raw string value observed in the
// source file; column order lives in the header slice the parser returns
// alongside the records, not in the map itself.
package records

import "strings"

// Record is one parsed data row.
type Record map[string]string

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Blank reports whether the value for col is absent or whitespace-only.
func (r Record) Blank(col string) bool {
	return strings.TrimSpace(r[col]) == ""
}

// Values projects the record onto cols, preserving their order. Missing
// columns yield empty strings.
func (r Record) Values(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = r[c]
	}
	return out
}

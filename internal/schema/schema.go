// Package schema declares the required-column contracts used by the
// validator and the relational sink, and implements the validation pass
// itself. Validation is a pure function: it never touches a file or a
// network socket, which keeps it trivially table-testable.
package schema

import (
	"math"
	"strconv"
	"strings"
)

// Rule is the value constraint attached to a column.
type Rule int

const (
	// TextOptional accepts any value, including blank.
	TextOptional Rule = iota
	// TextNonEmpty rejects rows where the value is absent or whitespace-only.
	TextNonEmpty
	// NumericPositive requires a numeric value strictly greater than zero.
	NumericPositive
	// NumericRange requires a numeric value within [Min, Max] inclusive.
	NumericRange
)

// Column declares one required column of a Schema.
type Column struct {
	Name    string  // exact, case-sensitive header name
	Label   string  // display name used in diagnostics; defaults to Name
	Rule    Rule    //
	Min     float64 // NumericRange lower bound (inclusive)
	Max     float64 // NumericRange upper bound (inclusive)
	SQLType string  // destination column type in the relational sink
	NotNull bool    // render NOT NULL in the destination DDL
}

// label returns the diagnostic display name for the column.
func (c Column) label() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// SQLValue converts a raw field into the value bound into an INSERT
// parameter. Numeric columns yield float64, or nil when the field is blank;
// text columns pass the string through unchanged.
func (c Column) SQLValue(raw string) (any, error) {
	switch c.Rule {
	case NumericPositive, NumericRange:
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, nil
		}
		f, ok := coerce(s)
		if !ok {
			return nil, errNonNumeric
		}
		return f, nil
	default:
		return raw, nil
	}
}

// Schema is a named, ordered list of required columns.
type Schema struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the declared column names in declaration order.
func (s Schema) ColumnNames() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// People is the fixed ingestion contract for the "people" dataset.
func People() Schema {
	return Schema{
		Name: "people",
		Columns: []Column{
			{Name: "name", Label: "Name", Rule: TextNonEmpty, SQLType: "TEXT"},
			{Name: "salary", Label: "Salary", Rule: NumericPositive, SQLType: "DOUBLE PRECISION"},
			{Name: "address", Label: "Address", Rule: TextNonEmpty, SQLType: "TEXT"},
			{Name: "gpa", Label: "GPA", Rule: NumericRange, Min: 0, Max: 4, SQLType: "DOUBLE PRECISION"},
			{Name: "school", Label: "School", Rule: TextNonEmpty, SQLType: "TEXT"},
		},
	}
}

// Dynamic builds the generic "employee" contract: every column from the
// source header, verbatim, stored as TEXT with no value constraints.
func Dynamic(header []string) Schema {
	cols := make([]Column, len(header))
	for i, h := range header {
		cols[i] = Column{Name: h, Rule: TextOptional, SQLType: "TEXT"}
	}
	return Schema{Name: "employee", Columns: cols}
}

// coerce parses s as a locale-free decimal number. It rejects empty strings,
// thousands separators, currency symbols, hex floats and the Inf/NaN forms
// strconv would otherwise accept.
func coerce(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == '+' || r == '-' || r == 'e' || r == 'E':
		default:
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

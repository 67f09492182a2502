package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tabular/pkg/records"
)

var errNonNumeric = errors.New("non-numeric value")

// Verdict is the terminal result of one validation pass.
type Verdict struct {
	Valid       bool
	Message     string
	RowCount    int
	ColumnCount int
}

// Validate runs the schema checks against parsed rows in strict order; the
// first failing check wins and later checks are not evaluated. The checks,
// in order:
//
//  1. at least one data row exists;
//  2. the observed header contains every declared column;
//  3. no declared column is blank across every row;
//  4. numeric columns coerce on every row and satisfy their bound;
//  5. non-empty text columns have no blank values.
//
// On success the verdict reports the row count and the observed (not just
// declared) column count.
func Validate(s Schema, header []string, recs []records.Record) Verdict {
	fail := func(msg string) Verdict {
		return Verdict{Valid: false, Message: msg, RowCount: len(recs), ColumnCount: len(header)}
	}

	if len(recs) == 0 {
		return fail("CSV has no data rows")
	}

	observed := make(map[string]struct{}, len(header))
	for _, h := range header {
		observed[h] = struct{}{}
	}
	var missing []string
	for _, c := range s.Columns {
		if _, ok := observed[c.Name]; !ok {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return fail("Missing required columns: " + strings.Join(missing, ", "))
	}

	for _, c := range s.Columns {
		allBlank := true
		for _, r := range recs {
			if !r.Blank(c.Name) {
				allBlank = false
				break
			}
		}
		if allBlank {
			return fail("Some columns contain only null values")
		}
	}

	for _, c := range s.Columns {
		if c.Rule != NumericPositive && c.Rule != NumericRange {
			continue
		}
		for _, r := range recs {
			if _, ok := coerce(r[c.Name]); !ok {
				return fail(fmt.Sprintf("%s column contains non-numeric values", c.label()))
			}
		}
		for _, r := range recs {
			v, _ := coerce(r[c.Name])
			switch c.Rule {
			case NumericPositive:
				if v <= 0 {
					return fail(fmt.Sprintf("%s must be greater than 0", c.label()))
				}
			case NumericRange:
				if v < c.Min || v > c.Max {
					return fail(fmt.Sprintf("%s must be between %s and %s",
						c.label(), trimFloat(c.Min), trimFloat(c.Max)))
				}
			}
		}
	}

	for _, c := range s.Columns {
		if c.Rule != TextNonEmpty {
			continue
		}
		for _, r := range recs {
			if r.Blank(c.Name) {
				return fail(fmt.Sprintf("%s column contains empty values", c.label()))
			}
		}
	}

	return Verdict{
		Valid:       true,
		Message:     fmt.Sprintf("CSV is valid. Contains %d rows and %d columns", len(recs), len(header)),
		RowCount:    len(recs),
		ColumnCount: len(header),
	}
}

// trimFloat renders a bound without a trailing ".0" so messages read
// "between 0 and 4" rather than "between 0.0 and 4.0".
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

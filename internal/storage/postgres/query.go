package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tabular/internal/db"
	"tabular/internal/fault"
)

// QueryResult is a materialized read: observed column names plus one
// name→value mapping per row, in result order.
type QueryResult struct {
	Columns []string
	Rows    []map[string]any
}

// ReadQuery executes one free-form SQL statement on the supplied
// connection and materializes the result. The statement is passed to the
// server untouched: callers are trusted to supply vetted read queries, and
// the database itself is the only validator. Misuse can read or write
// anything the credentials allow; that trust boundary is the caller's.
func ReadQuery(ctx context.Context, dbh db.DB, sql string) (*QueryResult, error) {
	rows, err := dbh.Query(ctx, sql)
	if err != nil {
		return nil, fault.Wrap(fault.DatabaseError, err, "execute query")
	}
	out := &QueryResult{Columns: rows.Columns}
	for _, vals := range rows.Values {
		rec := make(map[string]any, len(rows.Columns))
		for i, col := range rows.Columns {
			if i < len(vals) {
				rec[col] = jsonSafe(vals[i])
			}
		}
		out.Rows = append(out.Rows, rec)
	}
	return out, nil
}

// Person is one row of the csv_data table as returned by SearchPeople.
type Person struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Salary    *float64 `json:"salary"`
	Address   *string  `json:"address"`
	GPA       *float64 `json:"gpa"`
	School    *string  `json:"school"`
	CreatedAt string   `json:"created_at"`
}

// searchSQL matches names case-insensitively anywhere in the value and
// returns the most recent ingestions first.
const searchSQL = `
	SELECT id, name, salary, address, gpa, school, created_at
	FROM csv_data
	WHERE name ILIKE $1
	ORDER BY created_at DESC
	LIMIT 50`

// SearchPeople looks up csv_data rows whose name contains the given
// fragment.
func SearchPeople(ctx context.Context, dbh db.DB, name string) ([]Person, error) {
	rows, err := dbh.Query(ctx, searchSQL, "%"+name+"%")
	if err != nil {
		return nil, fault.Wrap(fault.DatabaseError, err, "search csv_data")
	}
	out := make([]Person, 0, len(rows.Values))
	for _, vals := range rows.Values {
		if len(vals) < 7 {
			return nil, fault.New(fault.DatabaseError, "short row from csv_data: %d values", len(vals))
		}
		p := Person{
			ID:      asInt64(vals[0]),
			Name:    asString(vals[1]),
			Salary:  asFloatPtr(vals[2]),
			Address: asStringPtr(vals[3]),
			GPA:     asFloatPtr(vals[4]),
			School:  asStringPtr(vals[5]),
		}
		if vals[6] != nil {
			p.CreatedAt = fmt.Sprint(jsonSafe(vals[6]))
		}
		out = append(out, p)
	}
	return out, nil
}

// FormatPeople renders search results as the display text block the host
// shows to the user.
func FormatPeople(name string, people []Person) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d record(s) for '%s':\n\n", len(people), name)
	for i, p := range people {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
		writeField(&b, "Salary", floatText(p.Salary, "$"))
		writeField(&b, "Address", strText(p.Address))
		writeField(&b, "GPA", floatText(p.GPA, ""))
		last := strText(p.School)
		if last == "" {
			b.WriteString("   School: N/A\n\n")
		} else {
			fmt.Fprintf(&b, "   School: %s\n\n", last)
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, label, val string) {
	if val == "" {
		fmt.Fprintf(b, "   %s: N/A\n", label)
		return
	}
	fmt.Fprintf(b, "   %s: %s\n", label, val)
}

// floatText renders a numeric field for display. Zero counts as absent,
// so a zero salary or GPA shows as N/A rather than "$0".
func floatText(f *float64, prefix string) string {
	if f == nil || *f == 0 {
		return ""
	}
	return prefix + strconv.FormatFloat(*f, 'f', -1, 64)
}

func strText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// jsonSafe converts a driver value into something encoding/json renders
// predictably. Times become RFC 3339 strings; anything without a native
// JSON form falls back to fmt.Sprint.
func jsonSafe(v any) any {
	switch t := v.(type) {
	case nil, bool, string, int, int16, int32, int64, float32, float64:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	}
	return 0
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func asStringPtr(v any) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	return &s
}

func asFloatPtr(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		return nil
	}
	return &f
}

// Package postgres implements the relational sink and the read-query path
// over the db interfaces. The sink performs an idempotent CREATE TABLE
// followed by a single-transaction load under one of two write policies;
// the read side materializes small result sets for the host boundary.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"tabular/internal/db"
	"tabular/internal/fault"
	"tabular/internal/schema"
	"tabular/pkg/records"
)

// Policy selects how the sink writes a batch. The two policies are distinct
// configurations, never merged or inferred.
type Policy int

const (
	// ReplaceAll truncates the destination before inserting the batch.
	// Used when the destination is a staging table scoped to one run.
	ReplaceAll Policy = iota
	// DedupeAppend checks full-row equality before each insert and skips
	// rows already present. The check is one SELECT per incoming row, so
	// cost grows with rows already present; acceptable for the small
	// batches this pipeline handles and a known limitation beyond that.
	DedupeAppend
)

// Sink loads validated records into one destination table.
type Sink struct {
	Table   string
	Columns []schema.Column // record-backed columns, in destination order
	Policy  Policy

	// Prefix and Suffix are fixed column clauses placed before and after
	// the record-backed columns in CREATE TABLE (surrogate keys,
	// timestamps). They are code-owned literals, never derived from input.
	Prefix []string
	Suffix []string
}

// Result reports one completed ingestion.
type Result struct {
	Inserted int
	Table    string
}

// PeopleSink writes the fixed people schema into the "people" staging
// table, replacing previous contents on every run.
func PeopleSink() Sink {
	s := schema.People()
	cols := s.Columns
	cols[0].NotNull = true // name TEXT NOT NULL, matching the fixed DDL
	return Sink{Table: "people", Columns: cols, Policy: ReplaceAll}
}

// CSVDataSink writes the people schema into the durable "csv_data" table,
// which carries a surrogate id and an insertion timestamp and accumulates
// across runs without duplicate rows.
func CSVDataSink() Sink {
	s := schema.People()
	cols := s.Columns
	cols[0].NotNull = true
	return Sink{
		Table:   "csv_data",
		Columns: cols,
		Policy:  DedupeAppend,
		Prefix:  []string{"id BIGSERIAL PRIMARY KEY"},
		Suffix:  []string{"created_at TIMESTAMPTZ NOT NULL DEFAULT now()"},
	}
}

// DynamicSink writes TEXT columns named verbatim after the source header
// into the "employee" table, appending only rows not already present.
func DynamicSink(header []string) Sink {
	return Sink{
		Table:   "employee",
		Columns: schema.Dynamic(header).Columns,
		Policy:  DedupeAppend,
	}
}

// createSQL renders the idempotent CREATE TABLE statement.
func (s Sink) createSQL() string {
	clauses := make([]string, 0, len(s.Prefix)+len(s.Columns)+len(s.Suffix))
	clauses = append(clauses, s.Prefix...)
	for _, c := range s.Columns {
		clause := pgIdent(c.Name) + " " + c.SQLType
		if c.NotNull {
			clause += " NOT NULL"
		}
		clauses = append(clauses, clause)
	}
	clauses = append(clauses, s.Suffix...)
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", pgFQN(s.Table), strings.Join(clauses, ", "))
}

// insertSQL renders the parameterized INSERT for the record-backed columns.
func (s Sink) insertSQL() string {
	names := make([]string, len(s.Columns))
	params := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = pgIdent(c.Name)
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgFQN(s.Table), strings.Join(names, ", "), strings.Join(params, ", "))
}

// existsSQL renders the full-row equality probe used by DedupeAppend.
// IS NOT DISTINCT FROM makes NULLs compare equal, so a re-run of a batch
// with blank numeric fields still matches its earlier rows.
func (s Sink) existsSQL() string {
	conds := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		conds[i] = fmt.Sprintf("%s IS NOT DISTINCT FROM $%d", pgIdent(c.Name), i+1)
	}
	return fmt.Sprintf("SELECT 1 FROM %s WHERE %s", pgFQN(s.Table), strings.Join(conds, " AND "))
}

// rowValues converts one record into the bound parameter slice.
func (s Sink) rowValues(rec records.Record) ([]any, error) {
	vals := make([]any, len(s.Columns))
	for i, c := range s.Columns {
		v, err := c.SQLValue(rec[c.Name])
		if err != nil {
			return nil, fault.Wrap(fault.SchemaError, err, "column %q", c.Name)
		}
		vals[i] = v
	}
	return vals, nil
}

// Ingest ensures the destination table exists, then loads recs under the
// configured policy. Everything runs in one transaction on the supplied
// connection: commit on success, rollback and a DatabaseError on any
// statement failure. The connection itself stays open; closing it is the
// caller's responsibility.
func (s Sink) Ingest(ctx context.Context, dbh db.DB, recs []records.Record) (Result, error) {
	res := Result{Table: s.Table}

	tx, err := dbh.BeginTx(ctx)
	if err != nil {
		return res, fault.Wrap(fault.DatabaseError, err, "begin transaction")
	}
	defer tx.Rollback(ctx)

	if err := tx.Exec(ctx, s.createSQL()); err != nil {
		return res, fault.Wrap(fault.DatabaseError, err, "create table %s", s.Table)
	}

	insert := s.insertSQL()
	switch s.Policy {
	case ReplaceAll:
		if err := tx.Exec(ctx, "TRUNCATE TABLE "+pgFQN(s.Table)); err != nil {
			return res, fault.Wrap(fault.DatabaseError, err, "truncate %s", s.Table)
		}
		for _, rec := range recs {
			vals, err := s.rowValues(rec)
			if err != nil {
				return res, err
			}
			if err := tx.Exec(ctx, insert, vals...); err != nil {
				return res, fault.Wrap(fault.DatabaseError, err, "insert into %s", s.Table)
			}
			res.Inserted++
		}

	case DedupeAppend:
		exists := s.existsSQL()
		for _, rec := range recs {
			vals, err := s.rowValues(rec)
			if err != nil {
				return res, err
			}
			found, err := tx.Exists(ctx, exists, vals...)
			if err != nil {
				return res, fault.Wrap(fault.DatabaseError, err, "probe %s", s.Table)
			}
			if found {
				continue
			}
			if err := tx.Exec(ctx, insert, vals...); err != nil {
				return res, fault.Wrap(fault.DatabaseError, err, "insert into %s", s.Table)
			}
			res.Inserted++
		}

	default:
		return res, fault.New(fault.DatabaseError, "unknown write policy %d", s.Policy)
	}

	if err := tx.Commit(ctx); err != nil {
		return res, fault.Wrap(fault.DatabaseError, err, "commit %s", s.Table)
	}
	return res, nil
}

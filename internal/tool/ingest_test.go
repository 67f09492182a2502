package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tabular/internal/db"
	"tabular/internal/fault"
)

// TestPeopleIngest_Success: a valid file loads through one connection and
// the JSON payload reports the inserted count and destination table.
func TestPeopleIngest_Success(t *testing.T) {
	mem := &memDB{}
	var connectedWith db.ConnParams
	tool := PeopleIngest{Connect: factoryFor(mem, &connectedWith)}

	outs := tool.Handle(context.Background(), IngestRequest{
		FileName: "people.csv",
		Content:  []byte(validPeopleCSV),
		Params:   testParams(),
	})

	if connectedWith.DBName != "wf" {
		t.Fatalf("connect params=%+v", connectedWith)
	}
	got := jsonOut(t, outs)
	if got["status"] != "success" {
		t.Fatalf("payload=%v", got)
	}
	if got["inserted_rows"] != 2 || got["table"] != "people" {
		t.Errorf("payload=%v", got)
	}
	if got["file_name"] != "people.csv" {
		t.Errorf("file_name=%v", got["file_name"])
	}
	cols, ok := got["expected_columns"].([]string)
	if !ok || len(cols) != 5 || cols[0] != "name" {
		t.Errorf("expected_columns=%v", got["expected_columns"])
	}
	if !mem.tx.committed {
		t.Error("load not committed")
	}
	if !mem.closed {
		t.Error("connection left open")
	}
}

// TestPeopleIngest_Errors: every failure folds into one JSON error payload
// with the stage that failed.
func TestPeopleIngest_Errors(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		tool     PeopleIngest
		wantKind string
		wantMsg  string
	}{
		{
			name:     "no file",
			content:  "",
			wantKind: "input_missing",
			wantMsg:  "CSV file not provided",
		},
		{
			name:     "invalid schema",
			content:  "name,salary\nAda,100\n",
			wantKind: "schema_error",
			wantMsg:  "Missing required columns: address, gpa, school",
		},
		{
			// db.Connect wraps driver failures as ConnectionError; that
			// kind must survive to the payload so the workflow can tell an
			// unreachable host from a failed statement.
			name:    "unreachable host",
			content: validPeopleCSV,
			tool: PeopleIngest{Connect: failingFactory(
				fault.New(fault.ConnectionError, "connect to db:5432/wf: connection refused"))},
			wantKind: "connection_error",
			wantMsg:  "connection refused",
		},
		{
			name:     "untyped connect failure",
			content:  validPeopleCSV,
			tool:     PeopleIngest{Connect: failingFactory(errors.New("refused"))},
			wantKind: "database_error",
			wantMsg:  "refused",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tool := tc.tool
			if tool.Connect == nil {
				tool.Connect = factoryFor(&memDB{}, nil)
			}
			outs := tool.Handle(context.Background(), IngestRequest{
				FileName: "people.csv",
				Content:  []byte(tc.content),
				Params:   testParams(),
			})
			got := jsonOut(t, outs)
			if got["status"] != "error" {
				t.Fatalf("payload=%v", got)
			}
			if got["kind"] != tc.wantKind {
				t.Errorf("kind=%v want %v", got["kind"], tc.wantKind)
			}
			if msg, _ := got["message"].(string); !strings.Contains(msg, tc.wantMsg) {
				t.Errorf("message=%q want containing %q", msg, tc.wantMsg)
			}
		})
	}
}

// TestPeopleIngest_LoadFailure: a statement error after connect surfaces
// as a database_error payload.
func TestPeopleIngest_LoadFailure(t *testing.T) {
	mem := &memDB{tx: &memTx{execErr: errors.New("disk full")}}
	tool := PeopleIngest{Connect: factoryFor(mem, nil)}

	outs := tool.Handle(context.Background(), IngestRequest{
		FileName: "people.csv",
		Content:  []byte(validPeopleCSV),
		Params:   testParams(),
	})
	got := jsonOut(t, outs)
	if got["status"] != "error" || got["kind"] != "database_error" {
		t.Fatalf("payload=%v", got)
	}
}

// TestDynamicIngest: header-derived columns, dedupe across the batch, and
// a single summary text output.
func TestDynamicIngest(t *testing.T) {
	csv := "emp_id,full name\n1,Ada\n2,Bob\n1,Ada\n"
	mem := &memDB{}
	tool := DynamicIngest{Connect: factoryFor(mem, nil)}

	outs := tool.Handle(context.Background(), IngestRequest{
		FileName: "emps.csv",
		Content:  []byte(csv),
		Params:   testParams(),
	})
	want := "Successfully imported 2 rows to employee table"
	if got := text(t, outs); got != want {
		t.Fatalf("text=%q want %q", got, want)
	}

	var sawCreate bool
	for _, sql := range mem.tx.execs {
		if strings.HasPrefix(sql, "CREATE TABLE IF NOT EXISTS \"employee\"") {
			sawCreate = true
		}
		if strings.HasPrefix(sql, "TRUNCATE") {
			t.Errorf("dynamic ingest truncated: %s", sql)
		}
	}
	if !sawCreate {
		t.Errorf("no create statement in %v", mem.tx.execs)
	}
}

func TestDynamicIngest_Errors(t *testing.T) {
	outs := DynamicIngest{}.Handle(context.Background(), IngestRequest{})
	if got := text(t, outs); got != "Error: CSV file not provided" {
		t.Fatalf("text=%q", got)
	}

	tool := DynamicIngest{Connect: failingFactory(errors.New("refused"))}
	outs = tool.Handle(context.Background(), IngestRequest{
		FileName: "emps.csv",
		Content:  []byte("a,b\n1,2\n"),
		Params:   testParams(),
	})
	if got := text(t, outs); !strings.HasPrefix(got, "Error: ") {
		t.Fatalf("text=%q", got)
	}
}

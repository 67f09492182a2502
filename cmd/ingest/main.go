// Command ingest loads a CSV file into PostgreSQL. The -mode flag selects
// the destination: "people" (fixed schema, staging table replaced each
// run), "csv_data" (fixed schema, durable table with dedupe-append) or
// "employee" (dynamic TEXT columns named after the source header,
// dedupe-append). The "csv_data" mode also accepts .xls/.xlsx input and
// reads the first worksheet.
//
// main() stays tiny and delegates to run() so the wiring is testable; the
// file reader and connection factory are injected through Deps.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"tabular/internal/config"
	"tabular/internal/db"
	"tabular/internal/logging"
	csvparser "tabular/internal/parser/csv"
	"tabular/internal/parser/excel"
	"tabular/internal/schema"
	"tabular/internal/storage/postgres"
	"tabular/internal/tool"
	"tabular/pkg/records"
)

// Deps holds injectable boundaries so run() is fully testable.
type Deps struct {
	ReadFile func(path string) ([]byte, error)
	Connect  db.Factory
	Stdout   interface{ Write([]byte) (int, error) }
}

func defaultDeps() Deps {
	return Deps{
		ReadFile: os.ReadFile,
		Connect:  db.Connect,
		Stdout:   os.Stdout,
	}
}

func main() {
	cfg := config.Load()
	log := logging.MustBuild(cfg.LogLevel)
	defer log.Sync()

	if err := run(context.Background(), cfg, defaultDeps(), log); err != nil {
		log.Error("ingest failed", zap.Error(err))
		os.Exit(1)
	}
}

// run reads the input file, dispatches on mode and prints the tool
// outputs. The "csv_data" mode has no tool counterpart (the original
// workflow created that table out of band), so it validates and loads
// directly through the sink.
func run(ctx context.Context, cfg *config.Config, deps Deps, log *zap.Logger) error {
	if cfg.Input == "" {
		return fmt.Errorf("missing -input")
	}
	content, err := deps.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input, err)
	}

	req := tool.IngestRequest{FileName: cfg.Input, Content: content, Params: cfg.Params()}

	switch cfg.Mode {
	case "people":
		t := tool.PeopleIngest{Connect: deps.Connect, Log: log}
		tool.Fprint(deps.Stdout, t.Handle(ctx, req))
		return nil

	case "employee":
		t := tool.DynamicIngest{Connect: deps.Connect, Log: log}
		tool.Fprint(deps.Stdout, t.Handle(ctx, req))
		return nil

	case "csv_data":
		header, recs, err := parseRows(cfg.Input, content)
		if err != nil {
			return err
		}
		if verdict := schema.Validate(schema.People(), header, recs); !verdict.Valid {
			return fmt.Errorf("validation failed: %s", verdict.Message)
		}
		dbh, err := deps.Connect(ctx, cfg.Params())
		if err != nil {
			return err
		}
		defer dbh.Close(ctx)
		res, err := postgres.CSVDataSink().Ingest(ctx, dbh, recs)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "inserted %d of %d rows into %s\n", res.Inserted, len(recs), res.Table)
		return nil

	default:
		return fmt.Errorf("unsupported -mode=%q", cfg.Mode)
	}
}

// parseRows decodes the input as a spreadsheet when the filename carries an
// accepted Excel extension, and as CSV otherwise.
func parseRows(filename string, content []byte) ([]string, []records.Record, error) {
	if excel.Accepted(filename) {
		sheet, err := excel.Open(filename, content)
		if err != nil {
			return nil, nil, err
		}
		return sheet.Records()
	}
	return csvparser.Parse(content)
}

package tool

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tabular/internal/db"
	"tabular/internal/fault"
	csvparser "tabular/internal/parser/csv"
	"tabular/internal/schema"
	"tabular/internal/storage/postgres"
)

// IngestRequest carries an uploaded CSV plus the destination database.
type IngestRequest struct {
	FileName string
	Content  []byte
	Params   db.ConnParams
}

// PeopleIngest validates a CSV against the fixed people schema and loads
// it into the "people" staging table, replacing previous contents. The
// whole load is one transaction: either every row lands or none do.
type PeopleIngest struct {
	// Connect mints the single connection used for the load. Defaults to
	// db.Connect; tests inject a fake.
	Connect db.Factory
	Log     *zap.Logger
}

// Handle yields exactly one structured JSON message: a success payload
// with the inserted row count, or an error payload with the failure kind.
func (t PeopleIngest) Handle(ctx context.Context, req IngestRequest) []Output {
	log := orNop(t.Log)

	if len(req.Content) == 0 {
		return []Output{statusError(fault.InputMissing, "CSV file not provided")}
	}

	header, recs, err := csvparser.Parse(req.Content)
	if err != nil {
		return []Output{failOutput(err)}
	}

	people := schema.People()
	if verdict := schema.Validate(people, header, recs); !verdict.Valid {
		return []Output{statusError(fault.SchemaError, verdict.Message)}
	}

	dbh, err := t.connect(ctx, req.Params)
	if err != nil {
		return []Output{failOutput(err)}
	}
	defer dbh.Close(ctx)

	sink := postgres.PeopleSink()
	res, err := sink.Ingest(ctx, dbh, recs)
	if err != nil {
		log.Error("people ingest failed",
			zap.String("file", req.FileName), zap.String("table", sink.Table), zap.Error(err))
		return []Output{failOutput(err)}
	}

	log.Info("people ingest done",
		zap.String("file", req.FileName),
		zap.String("table", res.Table),
		zap.Int("inserted", res.Inserted))

	return []Output{JSONOut(map[string]any{
		"status":           "success",
		"inserted_rows":    res.Inserted,
		"table":            res.Table,
		"file_name":        req.FileName,
		"expected_columns": people.ColumnNames(),
	})}
}

func (t PeopleIngest) connect(ctx context.Context, p db.ConnParams) (db.DB, error) {
	if t.Connect != nil {
		return t.Connect(ctx, p)
	}
	return db.Connect(ctx, p)
}

// DynamicIngest loads a CSV into the "employee" table with TEXT columns
// named after the source header, appending only rows not already present.
type DynamicIngest struct {
	Connect db.Factory
	Log     *zap.Logger
}

// Handle yields a single display-text message, matching the workflow this
// tool feeds (the step shows the import summary verbatim).
func (t DynamicIngest) Handle(ctx context.Context, req IngestRequest) []Output {
	log := orNop(t.Log)

	if len(req.Content) == 0 {
		return []Output{TextOut("Error: CSV file not provided")}
	}

	header, recs, err := csvparser.Parse(req.Content)
	if err != nil {
		return []Output{TextOut("Error: " + err.Error())}
	}

	dbh, err := t.connect(ctx, req.Params)
	if err != nil {
		return []Output{TextOut("Error: " + err.Error())}
	}
	defer dbh.Close(ctx)

	sink := postgres.DynamicSink(header)
	res, err := sink.Ingest(ctx, dbh, recs)
	if err != nil {
		log.Error("dynamic ingest failed",
			zap.String("file", req.FileName), zap.String("table", sink.Table), zap.Error(err))
		return []Output{TextOut("Error: " + err.Error())}
	}

	log.Info("dynamic ingest done",
		zap.String("file", req.FileName),
		zap.String("table", res.Table),
		zap.Int("inserted", res.Inserted),
		zap.Int("rows", len(recs)))

	return []Output{TextOut(fmt.Sprintf(
		"Successfully imported %d rows to %s table", res.Inserted, res.Table))}
}

func (t DynamicIngest) connect(ctx context.Context, p db.ConnParams) (db.DB, error) {
	if t.Connect != nil {
		return t.Connect(ctx, p)
	}
	return db.Connect(ctx, p)
}

// failOutput maps an error onto the canonical JSON error payload,
// preserving the fault kind when one is attached.
func failOutput(err error) Output {
	if kind, ok := fault.KindOf(err); ok {
		return statusError(kind, err.Error())
	}
	return statusError(fault.DatabaseError, err.Error())
}

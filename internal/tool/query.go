package tool

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"tabular/internal/db"
	"tabular/internal/storage/postgres"
)

// ReadQuery executes one caller-supplied SQL statement and returns the
// result set. The statement arrives as a JSON document with a single "sql"
// field (the upstream workflow step emits that shape); no validation is
// performed beyond what the database rejects. Callers are trusted to
// supply vetted read queries; misuse can touch anything the credentials
// allow, and that boundary is deliberately not patched here.
type ReadQuery struct {
	Connect db.Factory
	Log     *zap.Logger
}

// ReadQueryRequest carries the JSON-encoded query and the target database.
type ReadQueryRequest struct {
	Query  string // `{"sql": "..."}`
	Params db.ConnParams
}

// Handle parses the query envelope, runs the statement on one connection,
// and yields a single JSON message with rows, row_count and columns.
func (t ReadQuery) Handle(ctx context.Context, req ReadQueryRequest) []Output {
	log := orNop(t.Log)

	var envelope struct {
		SQL string `json:"sql"`
	}
	raw := strings.TrimSpace(req.Query)
	if raw == "" {
		return []Output{TextOut("Error: No SQL query provided")}
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return []Output{TextOut("Error parsing query JSON: " + err.Error())}
	}
	if strings.TrimSpace(envelope.SQL) == "" {
		return []Output{TextOut("Error: No SQL query provided")}
	}

	dbh, err := t.connect(ctx, req.Params)
	if err != nil {
		return []Output{TextOut("Error executing query: " + err.Error())}
	}
	defer dbh.Close(ctx)

	res, err := postgres.ReadQuery(ctx, dbh, envelope.SQL)
	if err != nil {
		log.Warn("read query failed", zap.Error(err))
		return []Output{TextOut("Error executing query: " + err.Error())}
	}

	log.Info("read query done",
		zap.Int("rows", len(res.Rows)), zap.Int("columns", len(res.Columns)))

	rows := make([]any, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = r
	}
	return []Output{JSONOut(map[string]any{
		"rows":      rows,
		"row_count": len(res.Rows),
		"columns":   res.Columns,
	})}
}

func (t ReadQuery) connect(ctx context.Context, p db.ConnParams) (db.DB, error) {
	if t.Connect != nil {
		return t.Connect(ctx, p)
	}
	return db.Connect(ctx, p)
}

// PeopleSearch looks up ingested people by name fragment in the csv_data
// table and renders both a structured result list and a display block.
type PeopleSearch struct {
	Connect db.Factory
	Log     *zap.Logger
}

// PeopleSearchRequest carries the name fragment and the target database.
type PeopleSearchRequest struct {
	Name   string
	Params db.ConnParams
}

// Handle yields one JSON message: {status, message, count, results}.
func (t PeopleSearch) Handle(ctx context.Context, req PeopleSearchRequest) []Output {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return []Output{JSONOut(map[string]any{
			"status":  "error",
			"message": "Name parameter required",
		})}
	}

	dbh, err := t.connect(ctx, req.Params)
	if err != nil {
		return []Output{JSONOut(map[string]any{"status": "error", "message": err.Error()})}
	}
	defer dbh.Close(ctx)

	people, err := postgres.SearchPeople(ctx, dbh, name)
	if err != nil {
		orNop(t.Log).Warn("people search failed", zap.String("name", name), zap.Error(err))
		return []Output{JSONOut(map[string]any{"status": "error", "message": err.Error()})}
	}

	if len(people) == 0 {
		return []Output{JSONOut(map[string]any{
			"status":  "success",
			"message": "No records found for \"" + name + "\"",
			"count":   0,
			"results": []any{},
		})}
	}

	results := make([]any, len(people))
	for i, p := range people {
		results[i] = p
	}
	return []Output{JSONOut(map[string]any{
		"status":  "success",
		"message": postgres.FormatPeople(name, people),
		"count":   len(people),
		"results": results,
	})}
}

func (t PeopleSearch) connect(ctx context.Context, p db.ConnParams) (db.DB, error) {
	if t.Connect != nil {
		return t.Connect(ctx, p)
	}
	return db.Connect(ctx, p)
}

package tool

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	csvparser "tabular/internal/parser/csv"
	"tabular/internal/schema"
)

// CSVValidator checks an uploaded CSV against the fixed people schema and
// reports a pass/fail verdict.
type CSVValidator struct {
	Log *zap.Logger
}

// CSVValidatorRequest carries the uploaded file.
type CSVValidatorRequest struct {
	FileName string
	Content  []byte
}

// Handle runs the validation pass. It always yields exactly two outputs: a
// display-text verdict and a "valid" variable ("true"/"false") for the
// workflow's branching logic.
func (t CSVValidator) Handle(ctx context.Context, req CSVValidatorRequest) []Output {
	log := orNop(t.Log)

	valid := false
	message := "CSV validation failed"

	switch {
	case len(req.Content) == 0:
		message = "CSV file not provided"
	default:
		header, recs, err := csvparser.Parse(req.Content)
		if err != nil {
			message = "Error reading CSV: " + err.Error()
			break
		}
		verdict := schema.Validate(schema.People(), header, recs)
		valid = verdict.Valid
		message = verdict.Message
		log.Info("csv validated",
			zap.String("file", req.FileName),
			zap.Bool("valid", verdict.Valid),
			zap.Int("rows", verdict.RowCount),
			zap.Int("columns", verdict.ColumnCount))
	}

	return []Output{
		TextOut(message),
		VariableOut("valid", strconv.FormatBool(valid)),
	}
}

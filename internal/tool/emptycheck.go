package tool

import (
	"context"

	"go.uber.org/zap"

	"tabular/internal/parser/excel"
)

// User-facing messages for the upload checker. The workflow this tool
// serves presents them to Japanese-speaking operators, so the strings are
// product copy carried as-is.
const (
	msgNoFile = "ファイルがアップロードされていません。変更を反映するためにファイルをアップロードしてください。"
	msgBadExt = "アップロードされたファイル形式が正しくありません。Excel形式（.xlsx、.xls）のファイルをアップロードしてください。"
	msgEmpty  = "アップロードされたファイルにデータが含まれていません。適切なデータが入力されたファイルをアップロードしてください。"
)

// EmptyFileCheck validates that an uploaded spreadsheet has an accepted
// extension and contains data beyond its header. A header matching the
// fixed reference template causes one additional preamble row to be
// skipped before the emptiness scan.
type EmptyFileCheck struct {
	// ScanHeader, when true, includes the header row in the scan so a
	// header-only file counts as non-empty. The default skips the header
	// (plus one extra row for reference-template files).
	ScanHeader bool
	Log        *zap.Logger
}

// EmptyFileCheckRequest carries the uploaded spreadsheet.
type EmptyFileCheckRequest struct {
	FileName string
	Content  []byte
}

// Handle yields a "success" variable ("True"/"False") and, on failure, the
// display message explaining which precondition broke. An unreadable file
// is treated as non-empty rather than an error: the downstream steps get
// to decide what to do with a workbook this tool could not inspect.
func (t EmptyFileCheck) Handle(ctx context.Context, req EmptyFileCheckRequest) []Output {
	log := orNop(t.Log)

	if req.FileName == "" || len(req.Content) == 0 {
		log.Info("no file input provided")
		return []Output{TextOut(msgNoFile), VariableOut("success", "False")}
	}

	if !excel.Accepted(req.FileName) {
		log.Info("unsupported file type", zap.String("file", req.FileName))
		return []Output{TextOut(msgBadExt), VariableOut("success", "False")}
	}

	sheet, err := excel.Open(req.FileName, req.Content)
	if err != nil {
		log.Warn("workbook unreadable, treating as non-empty",
			zap.String("file", req.FileName), zap.Error(err))
		return []Output{VariableOut("success", "True")}
	}

	if excel.IsEmpty(sheet, !t.ScanHeader) {
		log.Info("file is empty", zap.String("file", req.FileName))
		return []Output{TextOut(msgEmpty), VariableOut("success", "False")}
	}

	return []Output{VariableOut("success", "True")}
}

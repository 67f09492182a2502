// Command xlscheck verifies that a spreadsheet upload (.xls or .xlsx) has
// an accepted extension and contains data beyond its header row. Exit
// status is 0 when the file passes, 1 when it is empty or unsupported.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tabular/internal/config"
	"tabular/internal/logging"
	"tabular/internal/tool"
)

var flagScanHeader = flag.Bool("scan_header", false, "Include the header row in the emptiness scan")

func main() {
	cfg := config.Load()
	log := logging.MustBuild(cfg.LogLevel)
	defer log.Sync()

	if cfg.Input == "" {
		fmt.Fprintln(os.Stderr, "usage: xlscheck -input file.xlsx")
		os.Exit(2)
	}
	content, err := os.ReadFile(cfg.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", cfg.Input, err)
		os.Exit(2)
	}

	t := tool.EmptyFileCheck{ScanHeader: *flagScanHeader, Log: log}
	outs := t.Handle(context.Background(), tool.EmptyFileCheckRequest{
		FileName: cfg.Input,
		Content:  content,
	})
	tool.Fprint(os.Stdout, outs)

	if v, _ := tool.Variable(outs, "success"); v != "True" {
		os.Exit(1)
	}
}

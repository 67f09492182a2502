// Command csvcheck validates a CSV file against the fixed people schema
// and prints the verdict. Exit status is 0 when the file is valid, 1 when
// it is not.
package main

import (
	"context"
	"fmt"
	"os"

	"tabular/internal/config"
	"tabular/internal/logging"
	"tabular/internal/tool"
)

func main() {
	cfg := config.Load()
	log := logging.MustBuild(cfg.LogLevel)
	defer log.Sync()

	if cfg.Input == "" {
		fmt.Fprintln(os.Stderr, "usage: csvcheck -input file.csv")
		os.Exit(2)
	}
	content, err := os.ReadFile(cfg.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", cfg.Input, err)
		os.Exit(2)
	}

	t := tool.CSVValidator{Log: log}
	outs := t.Handle(context.Background(), tool.CSVValidatorRequest{
		FileName: cfg.Input,
		Content:  content,
	})
	tool.Fprint(os.Stdout, outs)

	if v, _ := tool.Variable(outs, "valid"); v != "true" {
		os.Exit(1)
	}
}

// Command query runs one read-only SQL statement against the configured
// PostgreSQL database and prints the result set as JSON. The statement can
// be given raw via -sql or as the {"sql": "..."} envelope the workflow
// runtime produces via -query.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"tabular/internal/config"
	"tabular/internal/logging"
	"tabular/internal/tool"
)

var (
	flagSQL   = flag.String("sql", "", "Raw SQL statement to execute")
	flagQuery = flag.String("query", "", `JSON envelope {"sql": "..."} as produced upstream`)
)

func main() {
	cfg := config.Load() // parses flag.CommandLine, including -sql/-query
	log := logging.MustBuild(cfg.LogLevel)
	defer log.Sync()

	envelope := *flagQuery
	if envelope == "" && *flagSQL != "" {
		b, err := json.Marshal(map[string]string{"sql": *flagSQL})
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode query: %v\n", err)
			os.Exit(2)
		}
		envelope = string(b)
	}
	if envelope == "" {
		fmt.Fprintln(os.Stderr, `usage: query -sql "SELECT ..." | -query '{"sql":"SELECT ..."}'`)
		os.Exit(2)
	}

	t := tool.ReadQuery{Log: log}
	outs := t.Handle(context.Background(), tool.ReadQueryRequest{
		Query:  envelope,
		Params: cfg.Params(),
	})
	tool.Fprint(os.Stdout, outs)

	// A text output on this tool is always an error report.
	for _, o := range outs {
		if o.Kind == tool.KindText {
			os.Exit(1)
		}
	}
}

// Command search looks up ingested people by name fragment in the
// csv_data table and prints the result payload.
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

var flagName = flag.String("name", "", "Name fragment to search for (case-insensitive)")

func main() {
	cfg := config.Load()
	log := logging.MustBuild(cfg.LogLevel)
	defer log.Sync()

	if *flagName == "" {
		fmt.Fprintln(os.Stderr, "usage: search -name alice")
		os.Exit(2)
	}

	t := tool.PeopleSearch{Log: log}
	outs := t.Handle(context.Background(), tool.PeopleSearchRequest{
		Name:   *flagName,
		Params: cfg.Params(),
	})
	tool.Fprint(os.Stdout, outs)
}

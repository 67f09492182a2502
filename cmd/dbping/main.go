// Command dbping checks that the configured PostgreSQL database is
// reachable with the supplied credentials. Exit status is 0 when the
// connection succeeds, 1 when it does not.
package main

import (
	"context"
	"os"

	"tabular/internal/config"
	"tabular/internal/logging"
	"tabular/internal/tool"
)

func main() {
	cfg := config.Load()
	log := logging.MustBuild(cfg.LogLevel)
	defer log.Sync()

	t := tool.HealthCheck{Log: log}
	outs := t.Handle(context.Background(), tool.HealthCheckRequest{Params: cfg.Params()})

	// Drop the db_config pass-through variable: it exists for workflow
	// chaining and would print the password on a terminal.
	filtered := outs[:0]
	for _, o := range outs {
		if o.Kind == tool.KindVariable && o.Name == "db_config" {
			continue
		}
		filtered = append(filtered, o)
	}
	tool.Fprint(os.Stdout, filtered)

	if v, _ := tool.Variable(filtered, "healthy"); v != "true" {
		os.Exit(1)
	}
}

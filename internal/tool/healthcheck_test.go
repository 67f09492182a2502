package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tabular/internal/db"
)

// TestHealthCheck_OK: a reachable database yields the success text, a true
// "healthy" flag, and the pass-through "db_config" object for downstream
// steps.
func TestHealthCheck_OK(t *testing.T) {
	var pinged db.ConnParams
	hc := HealthCheck{Ping: func(ctx context.Context, p db.ConnParams) error {
		pinged = p
		return nil
	}}

	outs := hc.Handle(context.Background(), HealthCheckRequest{Params: testParams()})
	if pinged.Host != "db" {
		t.Fatalf("ping params=%+v", pinged)
	}
	want := "Database connection successful. Connected to wf on db:5432"
	if got := text(t, outs); got != want {
		t.Errorf("text=%q want %q", got, want)
	}
	if got := variable(t, outs, "healthy"); got != "true" {
		t.Errorf("healthy=%v", got)
	}
	cfg, ok := variable(t, outs, "db_config").(map[string]any)
	if !ok {
		t.Fatal("db_config is not an object")
	}
	if cfg["host"] != "db" || cfg["dbname"] != "wf" || cfg["password"] != "pw" {
		t.Errorf("db_config=%v", cfg)
	}
	if cfg["port"] != 5432 {
		t.Errorf("port=%v (%T) want int 5432", cfg["port"], cfg["port"])
	}
}

// TestHealthCheck_Failure: the ping error appears in the text and the
// "healthy" flag goes false; the db_config variable is still present so
// the workflow shape stays stable.
func TestHealthCheck_Failure(t *testing.T) {
	hc := HealthCheck{Ping: func(ctx context.Context, p db.ConnParams) error {
		return errors.New("connection refused")
	}}

	outs := hc.Handle(context.Background(), HealthCheckRequest{Params: testParams()})
	if got := text(t, outs); !strings.HasPrefix(got, "Database connection failed: ") ||
		!strings.Contains(got, "connection refused") {
		t.Errorf("text=%q", got)
	}
	if got := variable(t, outs, "healthy"); got != "false" {
		t.Errorf("healthy=%v", got)
	}
	if _, ok := Variable(outs, "db_config"); !ok {
		t.Error("db_config missing on failure")
	}
}

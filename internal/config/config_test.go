package config

import (
	"flag"
	"testing"
)

func load(t *testing.T, env map[string]string, args []string) *Config {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	getenv := func(k string) string { return env[k] }
	return LoadFromArgs(fs, getenv, args)
}

// TestLoadDefaults: with no flags and no environment, every knob falls
// back to its documented default.
func TestLoadDefaults(t *testing.T) {
	cfg := load(t, nil, nil)
	if cfg.Input != "" || cfg.Mode != "people" {
		t.Errorf("input=%q mode=%q", cfg.Input, cfg.Mode)
	}
	if cfg.DBHost != "localhost" || cfg.DBPort != "5432" || cfg.DBName != "testdb" {
		t.Errorf("db defaults: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level=%q", cfg.LogLevel)
	}
}

// TestLoadPrecedence: environment values seed the defaults, explicit flags
// win over environment.
func TestLoadPrecedence(t *testing.T) {
	env := map[string]string{
		"DB_HOST":     "env-host",
		"DB_PASSWORD": "env-pw",
		"INGEST_MODE": "employee",
	}

	cfg := load(t, env, nil)
	if cfg.DBHost != "env-host" || cfg.DBPassword != "env-pw" || cfg.Mode != "employee" {
		t.Errorf("env seeding: %+v", cfg)
	}

	cfg = load(t, env, []string{"-db_host=flag-host", "-mode=csv_data"})
	if cfg.DBHost != "flag-host" {
		t.Errorf("flag should win: host=%q", cfg.DBHost)
	}
	if cfg.Mode != "csv_data" {
		t.Errorf("flag should win: mode=%q", cfg.Mode)
	}
	if cfg.DBPassword != "env-pw" {
		t.Errorf("untouched env value lost: %q", cfg.DBPassword)
	}
}

func TestParams(t *testing.T) {
	cfg := load(t, nil, []string{
		"-db_host=pg", "-db_port=5433", "-db_name=wf", "-db_user=app", "-db_password=pw",
	})
	p := cfg.Params()
	if p.Host != "pg" || p.Port != "5433" || p.DBName != "wf" || p.User != "app" || p.Password != "pw" {
		t.Errorf("params=%+v", p)
	}
}

// Package config centralizes configuration for the cmd binaries. All
// tunables are sourced from command-line flags with environment-variable
// fallbacks (12-factor friendly); flags are defined first so -help shows
// every knob and its default.
//
// Typical usage:
//
//	cfg := config.Load() // reads os.Args and os.Environ
//
// For tests, prefer LoadFromArgs to keep them hermetic:
//
//	fs := flag.NewFlagSet("test", flag.ContinueOnError)
//	getenv := func(k string) string { return testEnv[k] }
//	cfg := config.LoadFromArgs(fs, getenv, []string{"-db_host=pg"})
package config

import (
	"flag"
	"os"

	"tabular/internal/db"
)

// Config holds all process configuration derived from flags and
// environment variables. All fields are plain values so the struct can be
// copied freely after construction.
type Config struct {
	// Input is the path of the file to validate or ingest.
	Input string

	// Mode selects the ingestion destination: "people" (fixed schema,
	// replace-all), "csv_data" (fixed schema, dedupe-append) or
	// "employee" (dynamic columns, dedupe-append).
	Mode string

	// DB connectivity, assembled into db.ConnParams by Params().
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	// LogLevel is the zap level for the process logger.
	LogLevel string
}

// Params assembles the database connection parameters.
func (c *Config) Params() db.ConnParams {
	return db.ConnParams{
		Host:     c.DBHost,
		Port:     c.DBPort,
		DBName:   c.DBName,
		User:     c.DBUser,
		Password: c.DBPassword,
	}
}

// LoadFromArgs builds a Config by defining flags on fs, wiring each flag
// to an environment-variable fallback via getenv, and then parsing args.
//
// Precedence:
//  1. Environment values seed each flag's default.
//  2. Explicit CLI flags (in args) override the seeded defaults.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) *Config {
	cfg := &Config{}

	envOr := func(k, d string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return d
	}

	fs.StringVar(&cfg.Input, "input", envOr("INPUT_FILE", ""), "Path of the file to validate or ingest")
	fs.StringVar(&cfg.Mode, "mode", envOr("INGEST_MODE", "people"), "Destination: 'people', 'csv_data' or 'employee'")

	fs.StringVar(&cfg.DBHost, "db_host", envOr("DB_HOST", "localhost"), "DB host")
	fs.StringVar(&cfg.DBPort, "db_port", envOr("DB_PORT", "5432"), "DB port")
	fs.StringVar(&cfg.DBName, "db_name", envOr("DB_NAME", "testdb"), "DB name")
	fs.StringVar(&cfg.DBUser, "db_user", envOr("DB_USER", "user"), "DB user")
	fs.StringVar(&cfg.DBPassword, "db_password", envOr("DB_PASSWORD", ""), "DB password")

	fs.StringVar(&cfg.LogLevel, "log_level", envOr("LOG_LEVEL", "info"), "Log level: debug|info|warn|error")

	if args == nil {
		args = []string{}
	}
	_ = fs.Parse(args)
	return cfg
}

// Load is the production entry point. It wires the loader to the process
// flag set, reads environment variables via os.Getenv, and parses
// os.Args[1:].
func Load() *Config {
	return LoadFromArgs(flag.CommandLine, os.Getenv, os.Args[1:])
}

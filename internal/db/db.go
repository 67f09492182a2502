// Package db owns the connection boundary to PostgreSQL. It defines the
// ConnParams value the tools pass around (never stored, never logged with
// the password intact), the DB/Tx interfaces the sink and query layers
// program against, and the pgx-backed adapter behind them. The interfaces
// are narrow so tests can inject fakes without a live server.
package db

import (
	"context"
	"net"
	"net/url"
	"strings"
)

// ConnParams identifies one PostgreSQL database. The value is owned by the
// caller for the duration of a single invocation; nothing in this package
// retains it after the connection is closed.
type ConnParams struct {
	Host     string
	Port     string
	DBName   string
	User     string
	Password string
}

// Validate checks that all five fields are present. The credential
// boundary requires every field to be non-empty before a connection is
// attempted.
func (p ConnParams) Validate() error {
	missing := func(field string) error {
		return &ParamError{Field: field}
	}
	switch {
	case strings.TrimSpace(p.Host) == "":
		return missing("host")
	case strings.TrimSpace(p.Port) == "":
		return missing("port")
	case strings.TrimSpace(p.DBName) == "":
		return missing("dbname")
	case strings.TrimSpace(p.User) == "":
		return missing("user")
	case p.Password == "":
		return missing("password")
	}
	return nil
}

// ParamError reports a missing connection parameter.
type ParamError struct{ Field string }

func (e *ParamError) Error() string { return "missing credential: " + e.Field }

// DSN renders the params as a postgres:// URL, escaping user and password
// so special characters survive.
func (p ConnParams) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   "/" + p.DBName,
	}
	return u.String()
}

// Redacted returns a loggable copy with the password masked.
func (p ConnParams) Redacted() ConnParams {
	p.Password = "***"
	return p
}

// Rows is a fully materialized read result: ordered column names plus one
// value slice per row. Every read path in this repository is bounded
// (whole-file ingestion batches, LIMITed queries), so no cursor surface
// is exposed.
type Rows struct {
	Columns []string
	Values  [][]any
}

// DB is one open database connection. Every tool opens at most one DB per
// invocation and closes it before returning.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)
	BeginTx(ctx context.Context) (Tx, error)
	Close(ctx context.Context) error
}

// Tx supports the statements the sink issues inside its single transaction.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) error
	// Exists runs a query and reports whether it returned at least one row.
	Exists(ctx context.Context, sql string, args ...any) (bool, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory mints a new DB connection; cmd wiring injects fakes through it.
type Factory func(ctx context.Context, params ConnParams) (DB, error)

package db

// This file contains the pgx v5 adapter. The pgConnLike seam mirrors the
// subset of *pgx.Conn methods in use so the adapter can be exercised with a
// test double instead of a live server.

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tabular/internal/fault"
)

// pingTimeout bounds the credential-validation connect so an unreachable
// host fails fast instead of hanging on the driver default.
const pingTimeout = 5 * time.Second

// pgConnLike is the minimal subset of *pgx.Conn the adapter uses.
type pgConnLike interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close(ctx context.Context) error
}

type pgDB struct{ conn pgConnLike }

// Connect validates params, opens a single pgx connection and wraps it in
// the DB interface. Callers are responsible for closing it.
func Connect(ctx context.Context, params ConnParams) (DB, error) {
	if err := params.Validate(); err != nil {
		return nil, fault.Wrap(fault.ConnectionError, err, "invalid connection parameters")
	}
	c, err := pgx.Connect(ctx, params.DSN())
	if err != nil {
		return nil, fault.Wrap(fault.ConnectionError, err, "connect to %s:%s/%s", params.Host, params.Port, params.DBName)
	}
	return &pgDB{conn: c}, nil
}

// Ping opens and immediately closes a connection with a short connect
// timeout. It is the credential-validation path: success means the
// parameters are complete and the server is reachable.
func Ping(ctx context.Context, params ConnParams) error {
	if err := params.Validate(); err != nil {
		return fault.Wrap(fault.ConnectionError, err, "invalid connection parameters")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	c, err := pgx.Connect(ctx, params.DSN()+"?connect_timeout=5")
	if err != nil {
		return fault.Wrap(fault.ConnectionError, err, "connect to %s:%s/%s", params.Host, params.Port, params.DBName)
	}
	return c.Close(ctx)
}

// Exec runs one statement, discarding the command tag.
func (p *pgDB) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := p.conn.Exec(ctx, sql, args...)
	return err
}

// Query materializes a full result set into Rows. Column names come from
// the statement's field descriptions in result order.
func (p *pgDB) Query(ctx context.Context, sql string, args ...any) (*Rows, error) {
	rows, err := p.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &Rows{}
	for _, fd := range rows.FieldDescriptions() {
		out.Columns = append(out.Columns, string(fd.Name))
	}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		out.Values = append(out.Values, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// BeginTx starts a transaction and wraps it in the Tx interface.
func (p *pgDB) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgTx{tx: tx}, nil
}

// Close closes the underlying connection.
func (p *pgDB) Close(ctx context.Context) error { return p.conn.Close(ctx) }

type pgTx struct{ tx pgx.Tx }

func (t *pgTx) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := t.tx.Exec(ctx, sql, args...)
	return err
}

// Exists reports whether the query returned at least one row.
func (t *pgTx) Exists(ctx context.Context, sql string, args ...any) (bool, error) {
	rows, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	if rows.Next() {
		return true, rows.Err()
	}
	return false, rows.Err()
}

func (t *pgTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *pgTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// newPgDBFromConn constructs a pgDB from a pgConnLike fake. Test-only.
func newPgDBFromConn(c pgConnLike) *pgDB { return &pgDB{conn: c} }

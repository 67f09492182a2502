package tool

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"tabular/internal/db"
)

// HealthCheck verifies that the supplied connection parameters reach a
// live database. Success also re-emits the parameters as a "db_config"
// variable so downstream ingestion and query steps receive them without
// re-entry; the value passes through this tool, it is never stored.
type HealthCheck struct {
	// Ping opens and closes one short-timeout connection. Defaults to
	// db.Ping; tests inject a fake.
	Ping func(ctx context.Context, params db.ConnParams) error
	Log  *zap.Logger
}

// HealthCheckRequest carries the connection parameters under test.
type HealthCheckRequest struct {
	Params db.ConnParams
}

// Handle pings the database and yields a text message, a "healthy"
// variable, and the pass-through "db_config" object.
func (t HealthCheck) Handle(ctx context.Context, req HealthCheckRequest) []Output {
	log := orNop(t.Log)
	ping := t.Ping
	if ping == nil {
		ping = db.Ping
	}

	healthy := "false"
	message := "Database connection failed"

	p := req.Params
	if err := ping(ctx, p); err != nil {
		message = "Database connection failed: " + err.Error()
		log.Warn("db health check failed",
			zap.String("host", p.Host), zap.String("dbname", p.DBName), zap.Error(err))
	} else {
		healthy = "true"
		message = fmt.Sprintf("Database connection successful. Connected to %s on %s:%s",
			p.DBName, p.Host, p.Port)
		log.Info("db health check ok",
			zap.String("host", p.Host), zap.String("dbname", p.DBName))
	}

	// Downstream steps type-match on the port, so it goes out numeric.
	// An unparseable port passes through as-is.
	port := any(p.Port)
	if n, err := strconv.Atoi(p.Port); err == nil {
		port = n
	}

	return []Output{
		TextOut(message),
		VariableOut("healthy", healthy),
		VariableOut("db_config", map[string]any{
			"host":     p.Host,
			"port":     port,
			"dbname":   p.DBName,
			"user":     p.User,
			"password": p.Password,
		}),
	}
}

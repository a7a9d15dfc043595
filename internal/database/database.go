// Package database opens the PostgreSQL pool shared by the repositories and the migrator.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"linkmono/internal/config"
)

var sqlOpen = sql.Open

// applicationName is reported to PostgreSQL so the service's sessions show up in pg_stat_activity.
const applicationName = "linkmono"

const defaultPingTimeout = 5 * time.Second

// BuildPostgresDSN renders c as a postgres:// URL. Besides the credentials it carries
// application_name, sslmode, connect_timeout and statement_timeout when they are set.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"host", c.Host},
		{"port", c.Port},
		{"user", c.User},
		{"name", c.Name},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("invalid database config: missing %s", strings.Join(missing, ", "))
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	q.Set("application_name", applicationName)
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.PingTimeoutSec > 0 {
		q.Set("connect_timeout", strconv.Itoa(c.PingTimeoutSec))
	}
	if c.StatementTimeoutMs > 0 {
		q.Set("statement_timeout", strconv.Itoa(c.StatementTimeoutMs))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// traceOptions tags every database span with the target database and skips the
// per-row and session-reset spans that would swamp the search queries.
func traceOptions(c config.DatabaseConfig) []otelsql.Option {
	return []otelsql.Option{
		otelsql.WithAttributes(
			semconv.DBSystemPostgreSQL,
			semconv.DBNameKey.String(c.Name),
			semconv.DBUserKey.String(c.User),
			semconv.ServerAddressKey.String(c.Host),
		),
		otelsql.WithSQLCommenter(true),
		otelsql.WithSpanOptions(otelsql.SpanOptions{
			OmitConnResetSession: true,
			OmitRows:             true,
		}),
	}
}

func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(c.ConnMaxLifetime())
	}
}

// NewPostgres opens a traced pgx pool sized by c and pings it within c.PingTimeout.
// The pool is closed again when the ping fails or ctx ends first.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx", traceOptions(c)...)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	configurePool(db, c)

	timeout := c.PingTimeout()
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping %s: %w", net.JoinHostPort(c.Host, c.Port), err)
	}

	return db, nil
}

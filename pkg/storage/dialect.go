package storage

import (
	"strconv"
	"strings"
)

// Dialect abstracts the differences between the two supported SQL engines.
// Queries are written once with `?` placeholders and passed through Rebind;
// the strategy is selected at startup and never branched on per query.
type Dialect interface {
	// Name is the short engine name reported by /health.
	Name() string
	// DriverName is the database/sql driver to open.
	DriverName() string
	// Rebind rewrites `?` placeholders into the driver's syntax.
	Rebind(query string) string
	// BoolValue converts a boolean into the driver-native representation.
	BoolValue(b bool) any
	// RecentCutoff is the SQL expression for the date 30 days before today.
	RecentCutoff() string
	// MigrationsDir names the embedded migration directory for this engine.
	MigrationsDir() string
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string          { return "sqlite" }
func (sqliteDialect) DriverName() string    { return "sqlite3" }
func (sqliteDialect) Rebind(q string) string { return q }
func (sqliteDialect) MigrationsDir() string { return "sqlite" }
func (sqliteDialect) RecentCutoff() string  { return "date('now', '-30 days')" }

// SQLite has no boolean type; booleans are stored as 0/1 integers.
func (sqliteDialect) BoolValue(b bool) any {
	if b {
		return 1
	}
	return 0
}

type postgresDialect struct{}

func (postgresDialect) Name() string          { return "postgresql" }
func (postgresDialect) DriverName() string    { return "pgx" }
func (postgresDialect) BoolValue(b bool) any  { return b }
func (postgresDialect) MigrationsDir() string { return "postgres" }
func (postgresDialect) RecentCutoff() string  { return "CURRENT_DATE - INTERVAL '30 days'" }

// Rebind numbers every `?` placeholder as $1, $2, ... None of the queries in
// this codebase carry a literal question mark.
func (postgresDialect) Rebind(q string) string {
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

// SQLite returns the embedded single-file engine dialect.
func SQLite() Dialect { return sqliteDialect{} }

// Postgres returns the networked engine dialect.
func Postgres() Dialect { return postgresDialect{} }

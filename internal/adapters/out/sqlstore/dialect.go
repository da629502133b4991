package sqlstore

import (
	"fmt"
	"strings"
)

// Dialect holds the driver specific parts of the snapshot table.
type Dialect struct {
	Name   string
	Driver string

	dataType    string
	placeholder func(n int) string
}

var (
	// SQLite uses the pure Go modernc.org/sqlite driver.
	SQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite",
		dataType:    "TEXT",
		placeholder: func(int) string { return "?" },
	}

	// Postgres uses github.com/lib/pq.
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "postgres",
		dataType:    "JSONB",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

// DialectByName resolves "sqlite" or "postgres".
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case SQLite.Name:
		return SQLite, true
	case Postgres.Name:
		return Postgres, true
	default:
		return Dialect{}, false
	}
}

func (d Dialect) createTable(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	version INTEGER NOT NULL,
	data %s NOT NULL,
	stored_at BIGINT NOT NULL
)`, table, d.dataType)
}

func (d Dialect) upsert(table string) string {
	return fmt.Sprintf(`INSERT INTO %s (id, type, version, data, stored_at)
VALUES (%s, %s, %s, %s, %s)
ON CONFLICT (id) DO UPDATE SET
	type = excluded.type,
	version = excluded.version,
	data = excluded.data,
	stored_at = excluded.stored_at`,
		table, d.placeholder(1), d.placeholder(2), d.placeholder(3), d.placeholder(4), d.placeholder(5))
}

func (d Dialect) selectByID(table string) string {
	return fmt.Sprintf(`SELECT id, type, version, data, stored_at FROM %s WHERE id = %s`,
		table, d.placeholder(1))
}

package store

import (
	"database/sql"
	"fmt"

	"structcheck/internal/logging"
)

// Base schema. session_state and identity are singleton rows; visitors is
// the append/update summary log, insertion-ordered by rowid (upserts update
// in place and keep the original position); activity_log is append-only and
// informational.
const schema = `
CREATE TABLE IF NOT EXISTS session_state (
	id         TEXT PRIMARY KEY CHECK (id = 'current'),
	payload    TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS identity (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	user_id    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS visitors (
	user_id         TEXT PRIMARY KEY,
	user_type       TEXT NOT NULL DEFAULT '',
	answers         TEXT NOT NULL DEFAULT '[]',
	tracker_day     INTEGER NOT NULL DEFAULT 1,
	tracker_answers TEXT NOT NULL DEFAULT '[]',
	completion_rate REAL NOT NULL DEFAULT 0,
	answer_density  TEXT NOT NULL DEFAULT 'none',
	last_activity   DATETIME NOT NULL,
	status          TEXT NOT NULL DEFAULT 'potential'
);

CREATE TABLE IF NOT EXISTS activity_log (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	event      TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activity_user ON activity_log(user_id, created_at);
`

// Migration adds a column to an existing table.
type Migration struct {
	Table  string
	Column string
	Def    string
}

// pendingMigrations lists column additions for databases created before the
// column existed. The base schema already carries all of these for fresh
// databases.
var pendingMigrations = []Migration{
	{"visitors", "answer_density", "TEXT NOT NULL DEFAULT 'none'"},
	{"visitors", "status", "TEXT NOT NULL DEFAULT 'potential'"},
	{"activity_log", "detail", "TEXT NOT NULL DEFAULT ''"},
}

func (s *Store) initialize() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return runMigrations(s.db)
}

func runMigrations(db *sql.DB) error {
	log := logging.Named("store")
	for _, m := range pendingMigrations {
		if !tableExists(db, m.Table) {
			continue
		}
		if columnExists(db, m.Table, m.Column) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", m.Table, m.Column, err)
		}
		log.Info("applied migration", logging.String("table", m.Table), logging.String("column", m.Column))
	}
	return nil
}

func tableExists(db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&name)
	return err == nil
}

func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}

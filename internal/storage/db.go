package storage

import (
	"database/sql"
	"strings"

	"budgetbook/internal/query"

	"github.com/google/uuid"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS roles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			role_id TEXT REFERENCES roles(id),
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			system_admin INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			balance REAL NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'general'
		)`,
		`CREATE TABLE IF NOT EXISTS incomes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			category_id TEXT REFERENCES categories(id),
			title TEXT NOT NULL,
			amount REAL NOT NULL,
			date DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			category_id TEXT REFERENCES categories(id),
			title TEXT NOT NULL,
			amount REAL NOT NULL,
			date DATETIME NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return db.seedRoles()
}

// seedRoles makes sure the roles the application looks up by code exist.
func (db *DB) seedRoles() error {
	defaults := []struct{ name, code string }{
		{"Administrator", "admin"},
		{"User", "user"},
	}
	for _, r := range defaults {
		_, err := db.conn.Exec(
			"INSERT OR IGNORE INTO roles (id, name, code) VALUES (?, ?, ?)",
			uuid.NewString(), r.name, r.code,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// orderClause maps a requested sort field through a per-entity column
// whitelist. Unknown fields drop the ordering; any direction other than
// "desc" sorts ascending.
func orderClause(allowed map[string]string, q query.ListQuery) string {
	col, ok := allowed[q.SortField]
	if !ok {
		return ""
	}
	if strings.EqualFold(q.SortDir, "desc") {
		return " ORDER BY " + col + " DESC"
	}
	return " ORDER BY " + col + " ASC"
}

// whereClause joins ANDed predicate fragments into a WHERE clause.
func whereClause(preds []string) string {
	if len(preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(preds, " AND ")
}

package storage

import (
	"budgetbook/internal/models"
	"budgetbook/internal/query"
)

var userSortColumns = map[string]string{
	"name":  "name",
	"email": "email",
}

// CreateUser inserts a new user.
func (db *DB) CreateUser(u *models.User) error {
	_, err := db.conn.Exec(
		"INSERT INTO users (id, role_id, name, email, password_hash, system_admin) VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.RoleID, u.Name, u.Email, u.PasswordHash, u.SystemAdmin,
	)
	if err != nil {
		return err
	}
	return db.conn.QueryRow("SELECT created_at FROM users WHERE id = ?", u.ID).Scan(&u.CreatedAt)
}

func (db *DB) scanUserRow(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.RoleID, &u.Name, &u.Email, &u.PasswordHash, &u.SystemAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userColumns = "id, role_id, name, email, password_hash, system_admin, created_at"

// GetUser retrieves a user by ID.
func (db *DB) GetUser(id string) (*models.User, error) {
	return db.scanUserRow(db.conn.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

// GetUserByEmail retrieves a user by email.
func (db *DB) GetUserByEmail(email string) (*models.User, error) {
	return db.scanUserRow(db.conn.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE email = ?", email))
}

// UpdateUser writes back a user.
func (db *DB) UpdateUser(u *models.User) error {
	_, err := db.conn.Exec(
		"UPDATE users SET role_id = ?, name = ?, email = ?, password_hash = ?, system_admin = ? WHERE id = ?",
		u.RoleID, u.Name, u.Email, u.PasswordHash, u.SystemAdmin, u.ID,
	)
	return err
}

// DeleteUser removes a user by ID.
func (db *DB) DeleteUser(id string) error {
	_, err := db.conn.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// ListUsers retrieves one page of users plus the total row count for the
// pagination envelope. The keyword matches name or email.
func (db *DB) ListUsers(q query.ListQuery) ([]models.User, int, error) {
	var preds []string
	var args []any

	if q.Keyword != "" {
		preds = append(preds, "(LOWER(name) LIKE '%' || LOWER(?) || '%' OR LOWER(email) LIKE '%' || LOWER(?) || '%')")
		args = append(args, q.Keyword, q.Keyword)
	}

	var total int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM users"+whereClause(preds), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := "SELECT " + userColumns + " FROM users" +
		whereClause(preds) + orderClause(userSortColumns, q) + " LIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Skip())

	rows, err := db.conn.Query(sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.RoleID, &u.Name, &u.Email, &u.PasswordHash, &u.SystemAdmin, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}

	return users, total, rows.Err()
}

package storage

import (
	"budgetbook/internal/models"
	"budgetbook/internal/query"
)

var roleSortColumns = map[string]string{
	"name": "name",
	"code": "code",
}

// CreateRole inserts a new role.
func (db *DB) CreateRole(r *models.Role) error {
	_, err := db.conn.Exec(
		"INSERT INTO roles (id, name, code) VALUES (?, ?, ?)",
		r.ID, r.Name, r.Code,
	)
	return err
}

// GetRole retrieves a role by ID.
func (db *DB) GetRole(id string) (*models.Role, error) {
	row := db.conn.QueryRow("SELECT id, name, code FROM roles WHERE id = ?", id)

	var r models.Role
	if err := row.Scan(&r.ID, &r.Name, &r.Code); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRoleByCode retrieves a role by its short code, e.g. the default "user"
// role assigned at registration.
func (db *DB) GetRoleByCode(code string) (*models.Role, error) {
	row := db.conn.QueryRow("SELECT id, name, code FROM roles WHERE code = ?", code)

	var r models.Role
	if err := row.Scan(&r.ID, &r.Name, &r.Code); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateRole writes back a role.
func (db *DB) UpdateRole(r *models.Role) error {
	_, err := db.conn.Exec(
		"UPDATE roles SET name = ?, code = ? WHERE id = ?",
		r.Name, r.Code, r.ID,
	)
	return err
}

// ListRoles retrieves roles. The keyword matches name or code.
func (db *DB) ListRoles(q query.ListQuery) ([]models.Role, error) {
	var preds []string
	var args []any

	if q.Keyword != "" {
		preds = append(preds, "(LOWER(name) LIKE '%' || LOWER(?) || '%' OR LOWER(code) LIKE '%' || LOWER(?) || '%')")
		args = append(args, q.Keyword, q.Keyword)
	}

	sql := "SELECT id, name, code FROM roles" +
		whereClause(preds) + orderClause(roleSortColumns, q)

	rows, err := db.conn.Query(sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Code); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}

	return roles, rows.Err()
}

package storage

import (
	"budgetbook/internal/models"
	"budgetbook/internal/query"
)

var categorySortColumns = map[string]string{
	"name": "name",
	"type": "type",
}

// CreateCategory inserts a new category.
func (db *DB) CreateCategory(c *models.Category) error {
	_, err := db.conn.Exec(
		"INSERT INTO categories (id, name, type) VALUES (?, ?, ?)",
		c.ID, c.Name, c.Type,
	)
	return err
}

// GetCategory retrieves a single category by ID.
func (db *DB) GetCategory(id string) (*models.Category, error) {
	row := db.conn.QueryRow("SELECT id, name, type FROM categories WHERE id = ?", id)

	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Type); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCategory writes back a category.
func (db *DB) UpdateCategory(c *models.Category) error {
	_, err := db.conn.Exec(
		"UPDATE categories SET name = ?, type = ? WHERE id = ?",
		c.Name, c.Type, c.ID,
	)
	return err
}

// ListCategories retrieves categories. Categories are shared across users;
// filtering by type also includes the general ones.
func (db *DB) ListCategories(q query.ListQuery) ([]models.Category, error) {
	var preds []string
	var args []any

	if q.Keyword != "" {
		preds = append(preds, "LOWER(name) LIKE '%' || LOWER(?) || '%'")
		args = append(args, q.Keyword)
	}
	if q.Type != "" {
		preds = append(preds, "type IN (?, 'general')")
		args = append(args, q.Type)
	}

	sql := "SELECT id, name, type FROM categories" +
		whereClause(preds) + orderClause(categorySortColumns, q)

	rows, err := db.conn.Query(sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CategoryNames resolves category IDs to names in one query. Used to attach
// category summaries onto income and expense rows after a list query.
func (db *DB) CategoryNames(ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	placeholders := make([]byte, 0, 2*len(ids))
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args = append(args, id)
	}

	rows, err := db.conn.Query(
		"SELECT id, name FROM categories WHERE id IN ("+string(placeholders)+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}

	return names, rows.Err()
}

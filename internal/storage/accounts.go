package storage

import (
	"budgetbook/internal/models"
	"budgetbook/internal/query"
)

var accountSortColumns = map[string]string{
	"name":    "name",
	"type":    "type",
	"balance": "balance",
}

// CreateAccount inserts a new account.
func (db *DB) CreateAccount(a *models.Account) error {
	_, err := db.conn.Exec(
		"INSERT INTO accounts (id, user_id, name, type, balance) VALUES (?, ?, ?, ?, ?)",
		a.ID, a.UserID, a.Name, a.Type, a.Balance,
	)
	return err
}

// GetAccount retrieves one account owned by userID.
func (db *DB) GetAccount(id, userID string) (*models.Account, error) {
	row := db.conn.QueryRow(
		"SELECT id, user_id, name, type, balance FROM accounts WHERE id = ? AND user_id = ?",
		id, userID,
	)

	var a models.Account
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAccount writes back an account owned by userID.
func (db *DB) UpdateAccount(a *models.Account) error {
	_, err := db.conn.Exec(
		"UPDATE accounts SET name = ?, type = ?, balance = ? WHERE id = ? AND user_id = ?",
		a.Name, a.Type, a.Balance, a.ID, a.UserID,
	)
	return err
}

// ListAccounts retrieves the accounts owned by userID, filtered and ordered
// per the query descriptor.
func (db *DB) ListAccounts(userID string, q query.ListQuery) ([]models.Account, error) {
	preds := []string{"user_id = ?"}
	args := []any{userID}

	if q.Keyword != "" {
		preds = append(preds, "LOWER(name) LIKE '%' || LOWER(?) || '%'")
		args = append(args, q.Keyword)
	}
	if q.Type != "" {
		preds = append(preds, "type = ?")
		args = append(args, q.Type)
	}

	sql := "SELECT id, user_id, name, type, balance FROM accounts" +
		whereClause(preds) + orderClause(accountSortColumns, q)

	rows, err := db.conn.Query(sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

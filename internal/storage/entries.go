package storage

import (
	"sort"

	"budgetbook/internal/models"
	"budgetbook/internal/query"
)

// TransactionFeedLimit caps the merged incomes+expenses feed.
const TransactionFeedLimit = 10

var entrySortColumns = map[string]string{
	"title":  "title",
	"amount": "amount",
	"date":   "date",
}

func (db *DB) createEntry(table string, e *models.Entry) error {
	_, err := db.conn.Exec(
		"INSERT INTO "+table+" (id, user_id, category_id, title, amount, date) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.UserID, e.CategoryID, e.Title, e.Amount, e.Date,
	)
	return err
}

func (db *DB) getEntry(table, id, userID string) (*models.Entry, error) {
	row := db.conn.QueryRow(
		"SELECT id, user_id, category_id, title, amount, date FROM "+table+" WHERE id = ? AND user_id = ?",
		id, userID,
	)

	var e models.Entry
	if err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Title, &e.Amount, &e.Date); err != nil {
		return nil, err
	}
	return &e, nil
}

func (db *DB) updateEntry(table string, e *models.Entry) error {
	_, err := db.conn.Exec(
		"UPDATE "+table+" SET category_id = ?, title = ?, amount = ?, date = ? WHERE id = ? AND user_id = ?",
		e.CategoryID, e.Title, e.Amount, e.Date, e.ID, e.UserID,
	)
	return err
}

func (db *DB) listEntries(table, userID string, q query.ListQuery) ([]models.Entry, error) {
	preds := []string{"user_id = ?"}
	args := []any{userID}

	if q.Keyword != "" {
		preds = append(preds, "LOWER(title) LIKE '%' || LOWER(?) || '%'")
		args = append(args, q.Keyword)
	}
	if q.Category != "" {
		preds = append(preds, "category_id = ?")
		args = append(args, q.Category)
	}
	if q.StartDate != nil {
		preds = append(preds, "date >= ?")
		args = append(args, *q.StartDate)
	}
	if q.EndDate != nil {
		preds = append(preds, "date <= ?")
		args = append(args, *q.EndDate)
	}

	sql := "SELECT id, user_id, category_id, title, amount, date FROM " + table +
		whereClause(preds) + orderClause(entrySortColumns, q)

	rows, err := db.conn.Query(sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Title, &e.Amount, &e.Date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// CreateIncome inserts a new income row.
func (db *DB) CreateIncome(e *models.Entry) error { return db.createEntry("incomes", e) }

// CreateExpense inserts a new expense row.
func (db *DB) CreateExpense(e *models.Entry) error { return db.createEntry("expenses", e) }

// GetIncome retrieves one income owned by userID.
func (db *DB) GetIncome(id, userID string) (*models.Entry, error) {
	return db.getEntry("incomes", id, userID)
}

// GetExpense retrieves one expense owned by userID.
func (db *DB) GetExpense(id, userID string) (*models.Entry, error) {
	return db.getEntry("expenses", id, userID)
}

// UpdateIncome writes back an income owned by userID.
func (db *DB) UpdateIncome(e *models.Entry) error { return db.updateEntry("incomes", e) }

// UpdateExpense writes back an expense owned by userID.
func (db *DB) UpdateExpense(e *models.Entry) error { return db.updateEntry("expenses", e) }

// ListIncomes retrieves the incomes owned by userID per the query descriptor.
func (db *DB) ListIncomes(userID string, q query.ListQuery) ([]models.Entry, error) {
	return db.listEntries("incomes", userID, q)
}

// ListExpenses retrieves the expenses owned by userID per the query descriptor.
func (db *DB) ListExpenses(userID string, q query.ListQuery) ([]models.Entry, error) {
	return db.listEntries("expenses", userID, q)
}

// ListTransactions merges the caller's incomes and expenses, tags each row
// with its source type, sorts by date ascending and caps the result.
func (db *DB) ListTransactions(userID string) ([]models.Transaction, error) {
	incomes, err := db.listEntries("incomes", userID, query.ListQuery{})
	if err != nil {
		return nil, err
	}
	expenses, err := db.listEntries("expenses", userID, query.ListQuery{})
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(incomes)+len(expenses))
	for _, e := range incomes {
		transactions = append(transactions, models.Transaction{Entry: e, Type: "income"})
	}
	for _, e := range expenses {
		transactions = append(transactions, models.Transaction{Entry: e, Type: "expense"})
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})

	if len(transactions) > TransactionFeedLimit {
		transactions = transactions[:TransactionFeedLimit]
	}

	return transactions, nil
}

// CategoryTotal is one slice of the expense-by-category breakdown.
type CategoryTotal struct {
	Category string
	Total    float64
}

// ExpenseTotalsByCategory sums the caller's expenses per category over the
// descriptor's date range. Uncategorized rows are grouped separately.
func (db *DB) ExpenseTotalsByCategory(userID string, q query.ListQuery) ([]CategoryTotal, error) {
	preds := []string{"e.user_id = ?"}
	args := []any{userID}

	if q.StartDate != nil {
		preds = append(preds, "e.date >= ?")
		args = append(args, *q.StartDate)
	}
	if q.EndDate != nil {
		preds = append(preds, "e.date <= ?")
		args = append(args, *q.EndDate)
	}

	sql := `SELECT COALESCE(c.name, 'Uncategorized'), SUM(e.amount)
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id` +
		whereClause(preds) +
		" GROUP BY COALESCE(c.name, 'Uncategorized') ORDER BY SUM(e.amount) DESC"

	rows, err := db.conn.Query(sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

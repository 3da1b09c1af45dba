package handlers

import (
	"net/http"
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/query"
	"budgetbook/internal/storage"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type entryRequest struct {
	CategoryID *string    `json:"categoryId"`
	Title      *string    `json:"title"`
	Amount     *float64   `json:"amount"`
	Date       *time.Time `json:"date"`
}

// entryStore abstracts the incomes and expenses tables so both route sets
// share one handler implementation.
type entryStore struct {
	name   string
	list   func(db *storage.DB, userID string, q query.ListQuery) ([]models.Entry, error)
	create func(db *storage.DB, e *models.Entry) error
	get    func(db *storage.DB, id, userID string) (*models.Entry, error)
	update func(db *storage.DB, e *models.Entry) error
}

var incomeStore = entryStore{
	name:   "Income",
	list:   (*storage.DB).ListIncomes,
	create: (*storage.DB).CreateIncome,
	get:    (*storage.DB).GetIncome,
	update: (*storage.DB).UpdateIncome,
}

var expenseStore = entryStore{
	name:   "Expense",
	list:   (*storage.DB).ListExpenses,
	create: (*storage.DB).CreateExpense,
	get:    (*storage.DB).GetExpense,
	update: (*storage.DB).UpdateExpense,
}

// ListIncomes lists the caller's incomes.
func (h *Handlers) ListIncomes(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, incomeStore)
}

// ListExpenses lists the caller's expenses.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	h.listEntries(w, r, expenseStore)
}

// CreateIncome records an income for the caller.
func (h *Handlers) CreateIncome(w http.ResponseWriter, r *http.Request) {
	h.createEntry(w, r, incomeStore)
}

// CreateExpense records an expense for the caller.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	h.createEntry(w, r, expenseStore)
}

// GetIncome returns one of the caller's incomes.
func (h *Handlers) GetIncome(w http.ResponseWriter, r *http.Request) {
	h.getEntry(w, r, incomeStore)
}

// GetExpense returns one of the caller's expenses.
func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	h.getEntry(w, r, expenseStore)
}

// UpdateIncome applies a partial update to one of the caller's incomes.
func (h *Handlers) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	h.updateEntry(w, r, incomeStore)
}

// UpdateExpense applies a partial update to one of the caller's expenses.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	h.updateEntry(w, r, expenseStore)
}

func (h *Handlers) listEntries(w http.ResponseWriter, r *http.Request, store entryStore) {
	q := query.ParseListQuery(r.URL.Query())

	entries, err := store.list(h.db, h.sessionUserID(r), q)
	if err != nil {
		h.serverError(w, "List"+store.name, err)
		return
	}

	if err := h.attachCategoryNames(entries); err != nil {
		h.serverError(w, "List"+store.name, err)
		return
	}

	h.respondData(w, entries)
}

func (h *Handlers) createEntry(w http.ResponseWriter, r *http.Request, store entryStore) {
	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}
	if req.Title == nil || *req.Title == "" {
		h.respondError(w, "Title is required")
		return
	}
	if req.Date == nil {
		h.respondError(w, "Date is required")
		return
	}

	entry := &models.Entry{
		ID:         uuid.NewString(),
		UserID:     h.sessionUserID(r),
		CategoryID: req.CategoryID,
		Title:      *req.Title,
		Date:       *req.Date,
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
	}

	if err := store.create(h.db, entry); err != nil {
		h.serverError(w, "Create"+store.name, err)
		return
	}

	h.respondData(w, entry)
}

func (h *Handlers) getEntry(w http.ResponseWriter, r *http.Request, store entryStore) {
	entry, err := store.get(h.db, mux.Vars(r)["id"], h.sessionUserID(r))
	if isNotFound(err) {
		h.respondError(w, store.name+" not found")
		return
	}
	if err != nil {
		h.serverError(w, "Get"+store.name, err)
		return
	}

	if entry.CategoryID != nil {
		if names, err := h.db.CategoryNames([]string{*entry.CategoryID}); err == nil {
			entry.CategoryName = names[*entry.CategoryID]
		}
	}

	h.respondData(w, entry)
}

func (h *Handlers) updateEntry(w http.ResponseWriter, r *http.Request, store entryStore) {
	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}

	entry, err := store.get(h.db, mux.Vars(r)["id"], h.sessionUserID(r))
	if isNotFound(err) {
		h.respondError(w, store.name+" not found")
		return
	}
	if err != nil {
		h.serverError(w, "Update"+store.name, err)
		return
	}

	if req.CategoryID != nil {
		entry.CategoryID = req.CategoryID
	}
	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}

	if err := store.update(h.db, entry); err != nil {
		h.serverError(w, "Update"+store.name, err)
		return
	}

	h.respondData(w, entry)
}

// attachCategoryNames fills CategoryName on each entry with one batched
// lookup instead of a query per row.
func (h *Handlers) attachCategoryNames(entries []models.Entry) error {
	seen := make(map[string]bool)
	var ids []string
	for _, e := range entries {
		if e.CategoryID != nil && !seen[*e.CategoryID] {
			seen[*e.CategoryID] = true
			ids = append(ids, *e.CategoryID)
		}
	}

	names, err := h.db.CategoryNames(ids)
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].CategoryID != nil {
			entries[i].CategoryName = names[*entries[i].CategoryID]
		}
	}
	return nil
}

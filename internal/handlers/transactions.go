package handlers

import (
	"net/http"

	"budgetbook/internal/models"
)

// Transactions returns the caller's merged income/expense feed: each row
// tagged with its source type, sorted by date ascending, capped at ten.
func (h *Handlers) Transactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.db.ListTransactions(h.sessionUserID(r))
	if err != nil {
		h.serverError(w, "Transactions", err)
		return
	}

	entries := make([]models.Entry, len(transactions))
	for i, t := range transactions {
		entries[i] = t.Entry
	}
	if err := h.attachCategoryNames(entries); err != nil {
		h.serverError(w, "Transactions", err)
		return
	}
	for i := range transactions {
		transactions[i].Entry = entries[i]
	}

	h.respondData(w, transactions)
}

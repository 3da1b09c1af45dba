package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"budgetbook/internal/query"

	"github.com/wcharczuk/go-chart/v2"
)

// ExpensesChart renders the caller's expense totals per category over an
// optional date range as a PNG pie chart.
func (h *Handlers) ExpensesChart(w http.ResponseWriter, r *http.Request) {
	q := query.ParseListQuery(r.URL.Query())

	totals, err := h.db.ExpenseTotalsByCategory(h.sessionUserID(r), q)
	if err != nil {
		h.serverError(w, "ExpensesChart", err)
		return
	}
	if len(totals) == 0 {
		h.respondError(w, "No expense data for the requested period")
		return
	}

	values := make([]chart.Value, len(totals))
	for i, t := range totals {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%.2f)", t.Category, t.Total),
			Value: t.Total,
		}
	}

	pie := chart.PieChart{
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		h.serverError(w, "ExpensesChart", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.serverError(w, "ExpensesChart", err)
	}
}

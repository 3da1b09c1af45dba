package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router wires every API route behind the session middleware.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.SessionMiddleware)

	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/google", h.GoogleLogin).Methods(http.MethodPost)

	api.HandleFunc("/accounts", h.ListAccounts).Methods(http.MethodGet)
	api.HandleFunc("/accounts", h.CreateAccount).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id}", h.GetAccount).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}", h.UpdateAccount).Methods(http.MethodPatch)

	api.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", h.GetCategory).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", h.UpdateCategory).Methods(http.MethodPatch)

	api.HandleFunc("/incomes", h.ListIncomes).Methods(http.MethodGet)
	api.HandleFunc("/incomes", h.CreateIncome).Methods(http.MethodPost)
	api.HandleFunc("/incomes/{id}", h.GetIncome).Methods(http.MethodGet)
	api.HandleFunc("/incomes/{id}", h.UpdateIncome).Methods(http.MethodPatch)

	api.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses", h.CreateExpense).Methods(http.MethodPost)
	api.HandleFunc("/expenses/{id}", h.GetExpense).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods(http.MethodPatch)

	api.HandleFunc("/transactions", h.Transactions).Methods(http.MethodGet)

	api.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.UpdateUser).Methods(http.MethodPatch)
	api.HandleFunc("/users/{id}", h.DeleteUser).Methods(http.MethodDelete)

	api.HandleFunc("/roles", h.ListRoles).Methods(http.MethodGet)
	api.HandleFunc("/roles", h.CreateRole).Methods(http.MethodPost)
	api.HandleFunc("/roles/{id}", h.GetRole).Methods(http.MethodGet)
	api.HandleFunc("/roles/{id}", h.UpdateRole).Methods(http.MethodPatch)

	api.HandleFunc("/reports/expenses-chart", h.ExpensesChart).Methods(http.MethodGet)

	return r
}

package models

import "time"

// Account is a money account owned by exactly one user.
type Account struct {
	ID      string  `json:"id"`
	UserID  string  `json:"userId"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}

// Category is shared across users. Type is "income", "expense" or "general";
// general categories are offered alongside either specific type.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Entry is a row in either the incomes or the expenses table.
// CategoryName is filled in after the list query, not stored.
type Entry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CategoryID   *string   `json:"categoryId,omitempty"`
	CategoryName string    `json:"categoryName,omitempty"`
	Title        string    `json:"title"`
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
}

// Transaction is an entry tagged with the table it came from.
type Transaction struct {
	Entry
	Type string `json:"type"`
}

// User is an application account. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	RoleID       *string   `json:"roleId,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	SystemAdmin  bool      `json:"systemAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Role groups users; Code is the short identifier used for lookups.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"totalPage"`
}

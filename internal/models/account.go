package models

import "time"

// Account is the persisted row. Email is stored lowercased and Phone in the
// canonical 0-prefixed local form. Soft-deleted rows keep their email; only
// live rows participate in uniqueness.
type Account struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone"`
	BrandName    string     `json:"brand_name"`
	Status       string     `json:"status"`
	Credits      int        `json:"credits"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

const (
	StatusPending = "pending"
	StatusActive  = "active"
)

type RegisterRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BrandName string `json:"brandName"`
}

// AccountSummary is the public view returned after registration. The password
// hash and credits never leave the server through this type.
type AccountSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BrandName string `json:"brandName"`
	Status    string `json:"status"`
}

func (a *Account) Summary() *AccountSummary {
	return &AccountSummary{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		BrandName: a.BrandName,
		Status:    a.Status,
	}
}

package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

func IsValidTransactionType(t string) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Transaction struct {
	ID              int             `json:"id,omitempty" db:"id,omitempty"`
	UserID          int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	Category        string          `json:"category,omitempty" db:"category,omitempty"`
	CategoryLabel   string          `json:"category_label,omitempty" db:"-"`
	TransactionType string          `json:"transaction_type,omitempty" db:"transaction_type,omitempty"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Note            sql.NullString  `json:"-" db:"note,omitempty"`
	NoteText        string          `json:"note,omitempty" db:"-"`
	Date            string          `json:"date,omitempty" db:"date,omitempty"`
	CreatedAt       string          `json:"created_at,omitempty" db:"created_at,omitempty"`
}

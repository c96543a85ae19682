package models

import "github.com/shopspring/decimal"

type Budget struct {
	ID            int             `json:"id,omitempty" db:"id,omitempty"`
	UserID        int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	Category      string          `json:"category,omitempty" db:"category,omitempty"`
	CategoryLabel string          `json:"category_label,omitempty" db:"-"`
	BudgetAmount  decimal.Decimal `json:"budget_amount" db:"budget_amount"`
	CycleMonth    string          `json:"cycle_month,omitempty" db:"cycle_month,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt     string          `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}

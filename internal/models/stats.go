package models

import "github.com/shopspring/decimal"

// UserStats is the per-user monthly snapshot returned by the statistics
// service. Sums are zero, never null, when nothing matched.
type UserStats struct {
	TransactionsCount int             `json:"transactions_count"`
	MonthlyIncome     decimal.Decimal `json:"monthly_income"`
	MonthlyExpense    decimal.Decimal `json:"monthly_expense"`
	MonthlyBalance    decimal.Decimal `json:"monthly_balance"`
	BudgetsCount      int             `json:"budgets_count"`
}

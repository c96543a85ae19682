package services

import (
	"context"
	"database/sql"
	"time"

	"budgetbuddy/internal/models"
	"budgetbuddy/pkg/utils"

	"github.com/shopspring/decimal"
)

// UserStats computes the per-user snapshot for the month containing now:
// all-time transaction count, this month's income and expense totals, their
// balance, and the number of budgets the user owns. Only the user's own
// rows are scanned.
func UserStats(ctx context.Context, db *sql.DB, userID int, now time.Time) (models.UserStats, error) {
	stats := models.UserStats{
		MonthlyIncome:  decimal.Zero,
		MonthlyExpense: decimal.Zero,
		MonthlyBalance: decimal.Zero,
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	from := monthStart.Format("2006-01-02")
	to := nextMonth.Format("2006-01-02")

	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE user_id = ?", userID,
	).Scan(&stats.TransactionsCount)
	if err != nil {
		return stats, utils.ErrorHandler(err, "failed to count transactions")
	}

	income, err := sumByType(ctx, db, userID, models.TransactionTypeIncome, from, to)
	if err != nil {
		return stats, err
	}

	expense, err := sumByType(ctx, db, userID, models.TransactionTypeExpense, from, to)
	if err != nil {
		return stats, err
	}

	stats.MonthlyIncome = income
	stats.MonthlyExpense = expense
	stats.MonthlyBalance = income.Sub(expense)

	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM budgets WHERE user_id = ?", userID,
	).Scan(&stats.BudgetsCount)
	if err != nil {
		return stats, utils.ErrorHandler(err, "failed to count budgets")
	}

	return stats, nil
}

// sumByType totals the user's transactions of one direction inside the
// half-open date range [from, to). COALESCE keeps empty months at zero.
func sumByType(ctx context.Context, db *sql.DB, userID int, txnType, from, to string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ? AND transaction_type = ? AND date >= ? AND date < ?
	`, userID, txnType, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, utils.ErrorHandler(err, "failed to sum "+txnType+" transactions")
	}
	return total, nil
}

package routers

import (
	"net/http"

	"budgetbuddy/internal/api/handlers/finance"
)

func financeRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/finance/categories", finance.CategoryChoicesHandler)

	mux.HandleFunc("/finance/transactions", finance.GetMyTransactionsHandler)
	mux.HandleFunc("/finance/transactions/create", finance.CreateTransactionHandler)
	mux.HandleFunc("/finance/transactions/{id}", finance.GetTransactionByIDHandler)

	mux.HandleFunc("/finance/budgets", finance.GetMyBudgetsHandler)
	mux.HandleFunc("/finance/budgets/create", finance.CreateBudgetHandler)

	return mux
}

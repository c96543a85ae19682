package finance

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"budgetbuddy/internal/api/handlers"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/repositories/sqlconnect"
	"budgetbuddy/pkg/utils"

	"github.com/shopspring/decimal"
)

// FUNC TO GET ALL BUDGETS FOR A USER
func GetMyBudgetsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := sqlconnect.DBForRead("finance")
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT id, category, budget_amount, cycle_month, created_at, updated_at
		FROM budgets
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		utils.Logger.Errorf("error fetching budgets: %v", err)
		utils.WriteError(w, "error fetching budgets", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var budget models.Budget
		err = rows.Scan(&budget.ID, &budget.Category, &budget.BudgetAmount, &budget.CycleMonth, &budget.CreatedAt, &budget.UpdatedAt)
		if err != nil {
			utils.Logger.Errorf("error fetching data: %v", err)
			utils.WriteError(w, "error fetching budgets", http.StatusInternalServerError)
			return
		}
		budget.UserID = userID
		budget.CategoryLabel = models.CategoryLabel(budget.Category)
		budgets = append(budgets, budget)
	}

	response := struct {
		Status string          `json:"status"`
		Count  int             `json:"count"`
		Data   []models.Budget `json:"data"`
	}{
		Status: "success",
		Count:  len(budgets),
		Data:   budgets,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO CREATE A BUDGET
func CreateBudgetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := sqlconnect.DBForWrite("finance")
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type createRequest struct {
		Category     string          `json:"category"`
		BudgetAmount decimal.Decimal `json:"budget_amount"`
		CycleMonth   string          `json:"cycle_month"`
	}

	var req createRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !models.IsValidCategory(req.Category) {
		utils.WriteError(w, "invalid category", http.StatusBadRequest)
		return
	}
	if req.BudgetAmount.IsNegative() {
		utils.WriteError(w, "budget_amount must not be negative", http.StatusBadRequest)
		return
	}

	cycle, err := time.Parse("2006-01-02", req.CycleMonth)
	if err != nil {
		utils.WriteError(w, "cycle_month must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}
	// Calendar-month granularity: any day collapses to the first.
	cycleMonth := time.Date(cycle.Year(), cycle.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	amount := req.BudgetAmount.Round(2)
	now := time.Now().Format(time.RFC3339)

	// No pre-check SELECT: the unique index on (user_id, category,
	// cycle_month) settles concurrent duplicates.
	res, err := db.Exec(
		"INSERT INTO budgets (user_id, category, budget_amount, cycle_month, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		userID, req.Category, amount.String(), cycleMonth, now, now,
	)
	if err != nil {
		if handlers.IsDuplicateKeyErr(err) {
			utils.WriteError(w, "budget for this category and month already exists", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to insert budget: %v", err)
		utils.WriteError(w, "error creating budget", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("failed to get last insert ID: %v", err)
		utils.WriteError(w, "error creating budget", http.StatusInternalServerError)
		return
	}

	budget := models.Budget{
		ID:            int(id),
		UserID:        userID,
		Category:      req.Category,
		CategoryLabel: models.CategoryLabel(req.Category),
		BudgetAmount:  amount,
		CycleMonth:    cycleMonth,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   budget,
	})
}

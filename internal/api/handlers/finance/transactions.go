package finance

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"budgetbuddy/internal/api/handlers"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/repositories/sqlconnect"
	"budgetbuddy/pkg/utils"

	"github.com/shopspring/decimal"
)

// FUNC TO GET ALL TRANSACTIONS FOR A USER
func GetMyTransactionsHandler(w http.ResponseWriter, r *http.Request) {
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

	page, limit := utils.GetPaginationParams(r)
	offset := (page - 1) * limit

	rows, err := db.QueryContext(ctx, `
		SELECT id, category, transaction_type, amount, note, date, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var txn models.Transaction
		err = rows.Scan(&txn.ID, &txn.Category, &txn.TransactionType, &txn.Amount, &txn.Note, &txn.Date, &txn.CreatedAt)
		if err != nil {
			utils.Logger.Errorf("error fetching data: %v", err)
			utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
			return
		}
		txn.UserID = userID
		txn.NoteText = txn.Note.String
		txn.CategoryLabel = models.CategoryLabel(txn.Category)
		transactions = append(transactions, txn)
	}

	response := struct {
		Status   string               `json:"status"`
		Count    int                  `json:"count"`
		Page     int                  `json:"page"`
		PageSize int                  `json:"page_size"`
		Data     []models.Transaction `json:"data"`
	}{
		Status:   "success",
		Count:    len(transactions),
		Page:     page,
		PageSize: limit,
		Data:     transactions,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO CREATE A TRANSACTION
func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
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
		Category        string          `json:"category"`
		TransactionType string          `json:"transaction_type"`
		Amount          decimal.Decimal `json:"amount"`
		Note            string          `json:"note"`
		Date            string          `json:"date"`
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
	if !models.IsValidTransactionType(req.TransactionType) {
		utils.WriteError(w, "transaction_type must be income or expense", http.StatusBadRequest)
		return
	}
	if req.Amount.IsNegative() {
		utils.WriteError(w, "amount must not be negative", http.StatusBadRequest)
		return
	}
	// Character limit, not bytes: Thai notes run three bytes per rune.
	if utf8.RuneCountInString(req.Note) > 255 {
		utils.WriteError(w, "note must be at most 255 characters", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		utils.WriteError(w, "date must be in YYYY-MM-DD format", http.StatusBadRequest)
		return
	}

	amount := req.Amount.Round(2)
	createdAt := time.Now().Format(time.RFC3339)

	var note sql.NullString
	if req.Note != "" {
		note = sql.NullString{String: req.Note, Valid: true}
	}

	res, err := db.Exec(
		"INSERT INTO transactions (user_id, category, transaction_type, amount, note, date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		userID, req.Category, req.TransactionType, amount.String(), note, req.Date, createdAt,
	)
	if err != nil {
		utils.Logger.Errorf("failed to insert transaction: %v", err)
		utils.WriteError(w, "error creating transaction", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("failed to get last insert ID: %v", err)
		utils.WriteError(w, "error creating transaction", http.StatusInternalServerError)
		return
	}

	txn := models.Transaction{
		ID:              int(id),
		UserID:          userID,
		Category:        req.Category,
		CategoryLabel:   models.CategoryLabel(req.Category),
		TransactionType: req.TransactionType,
		Amount:          amount,
		Note:            note,
		NoteText:        req.Note,
		Date:            req.Date,
		CreatedAt:       createdAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   txn,
	})
}

// FUNC TO GET ONE TRANSACTION BY ID
func GetTransactionByIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := r.PathValue("id")
	transactionID, err := strconv.Atoi(idStr)
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
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

	var txn models.Transaction
	err = db.QueryRowContext(ctx, `
		SELECT id, category, transaction_type, amount, note, date, created_at
		FROM transactions WHERE id = ? AND user_id = ?
	`, transactionID, userID).Scan(&txn.ID, &txn.Category, &txn.TransactionType, &txn.Amount, &txn.Note, &txn.Date, &txn.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "no transaction found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching data: %v", err)
		utils.WriteError(w, "error fetching transaction", http.StatusInternalServerError)
		return
	}

	txn.UserID = userID
	txn.NoteText = txn.Note.String
	txn.CategoryLabel = models.CategoryLabel(txn.Category)

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   txn,
	})
}

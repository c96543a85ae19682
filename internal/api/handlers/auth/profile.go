package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"budgetbuddy/internal/api/handlers"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/repositories/sqlconnect"
	"budgetbuddy/internal/services"
	"budgetbuddy/pkg/utils"
)

// FUNC TO GET ALL USERS
func GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DBForRead("accounts")
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, limit := utils.GetPaginationParams(r)
	offset := (page - 1) * limit

	rows, err := db.QueryContext(ctx,
		"SELECT id, username, first_name, last_name, created_at FROM users ORDER BY id LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		utils.Logger.Errorf("error fetching users: %v", err)
		utils.WriteError(w, "error fetching users", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	users := []map[string]interface{}{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.CreatedAt); err != nil {
			utils.Logger.Errorf("error fetching data: %v", err)
			utils.WriteError(w, "error fetching users", http.StatusInternalServerError)
			return
		}
		profile := user.PublicProfile()
		profile["created_at"] = user.CreatedAt
		users = append(users, profile)
	}

	response := struct {
		Status   string                   `json:"status"`
		Count    int                      `json:"count"`
		Page     int                      `json:"page"`
		PageSize int                      `json:"page_size"`
		Data     []map[string]interface{} `json:"data"`
	}{
		Status:   "success",
		Count:    len(users),
		Page:     page,
		PageSize: limit,
		Data:     users,
	}

	utils.WriteJSON(w, response)
}

// FUNC TO GET ONE USER BY ID
func GetUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := r.PathValue("id")
	userID, err := strconv.Atoi(idStr)
	if err != nil {
		utils.WriteError(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	db := sqlconnect.DBForRead("accounts")
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var user models.User
	err = db.QueryRow(
		"SELECT id, username, first_name, last_name, created_at FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "user not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("error fetching data: %v", err)
		utils.WriteError(w, "error fetching user", http.StatusInternalServerError)
		return
	}

	profile := user.PublicProfile()
	profile["created_at"] = user.CreatedAt

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   profile,
	})
}

// FUNC TO SEARCH USERS BY NAME
func SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		utils.WriteError(w, "query parameter q is required", http.StatusBadRequest)
		return
	}

	db := sqlconnect.DBForRead("accounts")
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Case-insensitive on purpose: the username column's binary collation
	// only governs identity lookups, not discovery.
	pattern := "%" + q + "%"
	rows, err := db.QueryContext(ctx, `
		SELECT id, username, first_name, last_name FROM users
		WHERE LOWER(username) LIKE LOWER(?) OR LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)
		ORDER BY id
	`, pattern, pattern, pattern)
	if err != nil {
		utils.Logger.Errorf("error searching users: %v", err)
		utils.WriteError(w, "error searching users", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	users := []map[string]interface{}{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName); err != nil {
			utils.Logger.Errorf("error fetching data: %v", err)
			utils.WriteError(w, "error searching users", http.StatusInternalServerError)
			return
		}
		users = append(users, user.PublicProfile())
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(users),
		"data":   users,
	})
}

// FUNC TO UPDATE OWN PROFILE
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromRequest(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := sqlconnect.DBForWrite("accounts")
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var req models.UpdateProfileRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.FirstName == nil && req.LastName == nil {
		utils.WriteError(w, "no updatable fields provided", http.StatusBadRequest)
		return
	}

	// Allow-listed, field-by-field update; nothing else on the row can be
	// touched through this endpoint.
	if req.FirstName != nil {
		if _, err := db.Exec("UPDATE users SET first_name = ? WHERE id = ?", *req.FirstName, userID); err != nil {
			utils.Logger.Errorf("failed to update first_name: %v", err)
			utils.WriteError(w, "failed to update profile", http.StatusInternalServerError)
			return
		}
	}
	if req.LastName != nil {
		if _, err := db.Exec("UPDATE users SET last_name = ? WHERE id = ?", *req.LastName, userID); err != nil {
			utils.Logger.Errorf("failed to update last_name: %v", err)
			utils.WriteError(w, "failed to update profile", http.StatusInternalServerError)
			return
		}
	}

	var user models.User
	err := db.QueryRow(
		"SELECT id, username, first_name, last_name FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName)
	if err != nil {
		utils.WriteError(w, "user not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "profile updated successfully",
		"data":    user.PublicProfile(),
	})
}

// FUNC TO GET MY MONTHLY STATS
func MyStatsHandler(w http.ResponseWriter, r *http.Request) {
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

	stats, err := services.UserStats(ctx, db, userID, time.Now())
	if err != nil {
		utils.WriteError(w, "error computing statistics", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}

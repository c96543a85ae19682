package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"budgetbuddy/internal/api/handlers"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/repositories/sqlconnect"
	"budgetbuddy/pkg/utils"
)

// FUNC TO REGISTER USERS
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DBForWrite("accounts")
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type signupRequest struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	var req signupRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Username == "" || req.Password == "" {
		utils.WriteError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	if len(req.Password) < 6 {
		utils.WriteError(w, "password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	hashedPwd, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	createdAt := time.Now().Format(time.RFC3339)

	// The unique index on username is the authority here; a concurrent
	// signup with the same name loses with a duplicate-key error.
	res, err := db.Exec(
		"INSERT INTO users (username, first_name, last_name, password, created_at) VALUES (?, ?, ?, ?, ?)",
		req.Username, req.FirstName, req.LastName, hashedPwd, createdAt,
	)
	if err != nil {
		if handlers.IsDuplicateKeyErr(err) {
			utils.WriteError(w, "username already exists", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to insert user: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("failed to get last insert ID: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	user := models.User{
		ID:        int(id),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: createdAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"message": "user created successfully",
		"data":    user.PublicProfile(),
	})
}

// FUNC TO LOGIN
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DBForRead("accounts")
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Username == "" || req.Password == "" {
		utils.WriteError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user := &models.User{}

	// Exact, case-sensitive username match; the column carries a binary
	// collation so the index agrees with this comparison.
	query := "SELECT id, username, first_name, last_name, password FROM users WHERE username = ?"
	err := db.QueryRow(query, req.Username).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "user not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("database query error: %v", err)
		utils.WriteError(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := utils.VerifyPassword(req.Password, user.Password); err != nil {
		utils.WriteError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	tokenString, err := utils.SignToken(user.ID, user.Username)
	if err != nil {
		utils.Logger.Error("could not create login token")
		utils.WriteError(w, "error signing in", http.StatusInternalServerError)
		return
	}

	// Cookie and token expire together; SignToken already validated the
	// configured lifetime.
	lifetime, _ := utils.TokenLifetime()

	http.SetCookie(w, &http.Cookie{
		Name:     "Bearer",
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		Expires:  time.Now().Add(lifetime),
		SameSite: http.SameSiteStrictMode,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"message": "login successful",
		"token":   tokenString,
		"user":    user.PublicProfile(),
	})
}

// FUNC FOR LOGOUT
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "Bearer",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		Expires:  time.Unix(0, 0),
		SameSite: http.SameSiteStrictMode,
	})

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status": "success", "message": "logged out successfully"}`))
}

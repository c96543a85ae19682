package finance

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budgetbuddy/internal/repositories/dbrouter"
	"budgetbuddy/internal/repositories/sqlconnect"
	"budgetbuddy/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupFinanceDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlconnect.Init(nil, nil, dbrouter.Default())
		db.Close()
	})

	ddl := []string{
		`CREATE TABLE transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			category TEXT NOT NULL,
			transaction_type TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			note TEXT,
			date TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE budgets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			category TEXT NOT NULL,
			budget_amount NUMERIC NOT NULL,
			cycle_month TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (user_id, category, cycle_month)
		)`,
	}
	for _, stmt := range ddl {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	sqlconnect.Init(db, db, dbrouter.Default())
	return db
}

func authed(r *http.Request, userID int) *http.Request {
	ctx := context.WithValue(r.Context(), utils.ContextKey("userId"), float64(userID))
	return r.WithContext(ctx)
}

func createBudget(t *testing.T, userID int, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := authed(httptest.NewRequest(http.MethodPost, "/finance/budgets/create", strings.NewReader(body)), userID)
	rec := httptest.NewRecorder()
	CreateBudgetHandler(rec, req)
	return rec
}

func TestCreateBudget(t *testing.T) {
	setupFinanceDB(t)

	rec := createBudget(t, 1, `{"category":"food","budget_amount":"1500.00","cycle_month":"2025-09-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "food", data["category"])
	assert.Equal(t, "อาหาร", data["category_label"])
	assert.Equal(t, "2025-09-01", data["cycle_month"])
}

func TestCreateBudgetDuplicateFails(t *testing.T) {
	db := setupFinanceDB(t)

	require.Equal(t, http.StatusCreated, createBudget(t, 1, `{"category":"food","budget_amount":"1500","cycle_month":"2025-09-01"}`).Code)

	rec := createBudget(t, 1, `{"category":"food","budget_amount":"2000","cycle_month":"2025-09-01"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM budgets").Scan(&count))
	assert.Equal(t, 1, count)

	// same category, different month is fine
	assert.Equal(t, http.StatusCreated, createBudget(t, 1, `{"category":"food","budget_amount":"1500","cycle_month":"2025-10-01"}`).Code)
	// same month, different user is fine
	assert.Equal(t, http.StatusCreated, createBudget(t, 2, `{"category":"food","budget_amount":"1500","cycle_month":"2025-09-01"}`).Code)
}

func TestCreateBudgetNormalizesCycleMonth(t *testing.T) {
	setupFinanceDB(t)

	rec := createBudget(t, 1, `{"category":"bills","budget_amount":"800","cycle_month":"2025-09-17"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "2025-09-01", data["cycle_month"])

	// a different day of the same month still collides
	rec = createBudget(t, 1, `{"category":"bills","budget_amount":"900","cycle_month":"2025-09-03"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateBudgetValidation(t *testing.T) {
	setupFinanceDB(t)

	assert.Equal(t, http.StatusBadRequest, createBudget(t, 1, `{"category":"groceries","budget_amount":"100","cycle_month":"2025-09-01"}`).Code)
	assert.Equal(t, http.StatusBadRequest, createBudget(t, 1, `{"category":"food","budget_amount":"-5","cycle_month":"2025-09-01"}`).Code)
	assert.Equal(t, http.StatusBadRequest, createBudget(t, 1, `{"category":"food","budget_amount":"100","cycle_month":"September"}`).Code)
}

func TestGetMyBudgetsScopedToUser(t *testing.T) {
	setupFinanceDB(t)

	require.Equal(t, http.StatusCreated, createBudget(t, 1, `{"category":"food","budget_amount":"1500","cycle_month":"2025-09-01"}`).Code)
	require.Equal(t, http.StatusCreated, createBudget(t, 2, `{"category":"transport","budget_amount":"600","cycle_month":"2025-09-01"}`).Code)

	req := authed(httptest.NewRequest(http.MethodGet, "/finance/budgets", nil), 1)
	rec := httptest.NewRecorder()
	GetMyBudgetsHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
		Data  []struct {
			Category string `json:"category"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "food", body.Data[0].Category)
}

package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"budgetbuddy/internal/repositories/dbrouter"
	"budgetbuddy/internal/repositories/sqlconnect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupAuthDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlconnect.Init(nil, nil, dbrouter.Default())
		db.Close()
	})

	_, err = db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		password TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	require.NoError(t, err)

	sqlconnect.Init(db, db, dbrouter.Default())
	return db
}

func signup(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	RegisterHandler(rec, req)
	return rec
}

func login(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	LoginHandler(rec, req)
	return rec
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	db := setupAuthDB(t)

	rec := signup(t, `{"username":"somchai","password":"secret123","first_name":"Somchai","last_name":"J"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var stored string
	err := db.QueryRow("SELECT password FROM users WHERE username = 'somchai'").Scan(&stored)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored)
	assert.NotContains(t, stored, "secret123")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "somchai", data["username"])
	assert.NotContains(t, data, "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupAuthDB(t)

	rec := signup(t, `{"username":"somchai","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = signup(t, `{"username":"somchai","password":"another456"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'somchai'").Scan(&count))
	assert.Equal(t, 1, count, "duplicate signup must not create a second row")
}

func TestRegisterUsernameCaseSensitive(t *testing.T) {
	setupAuthDB(t)

	require.Equal(t, http.StatusCreated, signup(t, `{"username":"somchai","password":"secret123"}`).Code)
	assert.Equal(t, http.StatusCreated, signup(t, `{"username":"Somchai","password":"secret123"}`).Code)
}

func TestRegisterValidation(t *testing.T) {
	setupAuthDB(t)

	assert.Equal(t, http.StatusBadRequest, signup(t, `{"username":"","password":"secret123"}`).Code)
	assert.Equal(t, http.StatusBadRequest, signup(t, `{"username":"somchai","password":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, signup(t, `{"username":"somchai","password":"short"}`).Code)
	assert.Equal(t, http.StatusBadRequest, signup(t, `{"username":"somchai","password":"secret123","role":"admin"}`).Code)
}

func TestLoginDistinguishesUnknownUserFromWrongPassword(t *testing.T) {
	setupAuthDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	require.Equal(t, http.StatusCreated, signup(t, `{"username":"somchai","password":"secret123"}`).Code)

	rec := login(t, `{"username":"nobody","password":"secret123"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = login(t, `{"username":"somchai","password":"wrongpass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = login(t, `{"username":"somchai","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "somchai", user["username"])
}

func TestLoginCookieExpiryTracksTokenLifetime(t *testing.T) {
	setupAuthDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXP_HOURS", "2")

	require.Equal(t, http.StatusCreated, signup(t, `{"username":"somchai","password":"secret123"}`).Code)

	rec := login(t, `{"username":"somchai","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "Bearer", cookies[0].Name)

	expires := cookies[0].Expires
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expires, time.Minute,
		"cookie expiry must follow JWT_EXP_HOURS")
}

func TestLogout(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	rec := httptest.NewRecorder()
	LogoutHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "Bearer", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

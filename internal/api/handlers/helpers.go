package handlers

import (
	"errors"
	"net/http"
	"strings"

	"budgetbuddy/pkg/utils"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDuplicateEntry = 1062

// IsDuplicateKeyErr detects a unique-index violation. MySQL reports error
// 1062 on a typed *mysql.MySQLError; the sqlite driver used in tests only
// exposes "UNIQUE constraint failed" message text.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// UserIDFromRequest extracts the authenticated user id placed on the
// context by the JWT middleware.
func UserIDFromRequest(r *http.Request) (int, bool) {
	idFloat, ok := r.Context().Value(utils.ContextKey("userId")).(float64)
	if !ok {
		return 0, false
	}
	return int(idFloat), true
}

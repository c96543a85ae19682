package finance

import (
	"net/http"

	"budgetbuddy/internal/models"
	"budgetbuddy/pkg/utils"
)

// FUNC TO LIST CATEGORY CHOICES
// The enumeration is fixed; the same 10 pairs come back in the same order
// no matter what is stored.
func CategoryChoicesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   models.CategoryChoices,
	})
}

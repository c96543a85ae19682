package routers

import (
	"net/http"

	"budgetbuddy/internal/api/handlers/auth"
)

func usersRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/users/signup", auth.RegisterHandler)
	mux.HandleFunc("/users/login", auth.LoginHandler)
	mux.HandleFunc("/users/logout", auth.LogoutHandler)

	mux.HandleFunc("/users/search", auth.SearchUsersHandler)
	mux.HandleFunc("/users/me", auth.UpdateProfileHandler)
	mux.HandleFunc("/users/me/stats", auth.MyStatsHandler)

	mux.HandleFunc("/users", auth.GetAllUsersHandler)
	mux.HandleFunc("/users/{id}", auth.GetUserHandler)

	return mux
}

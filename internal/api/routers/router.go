package routers

import (
	"net/http"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	uRouter := usersRouter()
	mux.Handle("/users", uRouter)
	mux.Handle("/users/", uRouter)

	fRouter := financeRouter()
	mux.Handle("/finance/", fRouter)

	return mux
}

package main

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"

	mw "budgetbuddy/internal/api/middlewares"
	"budgetbuddy/internal/api/routers"
	"budgetbuddy/internal/repositories/dbrouter"
	"budgetbuddy/internal/repositories/sqlconnect"
	"budgetbuddy/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		return
	}

	utils.InitLogger()

	policy := dbrouter.Default()

	if err := sqlconnect.ConnectDbs(policy); err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	if err := sqlconnect.Migrate(policy); err != nil {
		utils.Logger.Fatal("DB provisioning failed: ", err)
	}

	port := os.Getenv("SERVER_PORT")

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	router := routers.MainRouter()
	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware, "/users/signup", "/users/login", "/finance/categories")

	secureMux := jwtMiddleware(mw.SecurityHeaders(router))

	server := &http.Server{
		Addr:      port,
		Handler:   secureMux,
		TLSConfig: tlsConfig,
	}

	fmt.Println("Server is running on port", port)
	err = server.ListenAndServeTLS(cert, key)
	if err != nil {
		log.Fatalln("Error starting the server", err)
	}
}

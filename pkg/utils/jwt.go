package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

// TokenLifetime is how long a signed login token (and its cookie) stays
// valid, from JWT_EXP_HOURS with a 24h default.
func TokenLifetime() (time.Duration, error) {
	hours := 24
	if v := os.Getenv("JWT_EXP_HOURS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, ErrorHandler(err, "invalid JWT_EXP_HOURS")
		}
		hours = parsed
	}
	return time.Duration(hours) * time.Hour, nil
}

func SignToken(userID int, username string) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")

	lifetime, err := TokenLifetime()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"uid":  userID,
		"user": username,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", ErrorHandler(err, "failed to sign token")
	}
	return signed, nil
}

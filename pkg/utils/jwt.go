package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

func CreateJWTToken(sessionID string, adminName string, jwtSecretKey string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["sessionID"] = sessionID
	claims["name"] = adminName
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

// ExtractTokenSession reads the console session id from the token placed
// in the context by the JWT middleware.
func ExtractTokenSession(c echo.Context) string {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return ""
	}

	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}

	sessionID, _ := claims["sessionID"].(string)
	return sessionID
}

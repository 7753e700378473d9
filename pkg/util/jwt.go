package util

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a portal capability token.
type Claims struct {
	Subject    string
	Role       string
	EmployerID int64
}

// GenerateJWT creates a token for a given principal.
func GenerateJWT(subject, role string, employerID int64, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":         subject,
		"role":        role,
		"employer_id": employerID,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates a token and extracts the principal.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}
	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}

	var employerID int64
	if idFloat, ok := mapClaims["employer_id"].(float64); ok {
		employerID = int64(idFloat)
	}

	return &Claims{
		Subject:    sub,
		Role:       role,
		EmployerID: employerID,
	}, nil
}

func ExtractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}

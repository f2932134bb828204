package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// AccessTokenValidity is how long an access token stays valid
const AccessTokenValidity = time.Hour * 24

// GenerateToken mints a signed access token carrying the user's id, email and
// admin flag. The admin claim is advisory for the UI only; authorization is
// re-checked server side on every engine call.
func GenerateToken(email, secret string, isAdmin bool, userID uint) (string, error) {
	claims := jwt.MapClaims{
		"id":       userID,
		"email":    email,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(AccessTokenValidity).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAndGetClaims verifies the token signature and expiry and returns its claims
func ValidateAndGetClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

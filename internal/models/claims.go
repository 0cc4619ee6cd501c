package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the bearer-token claims issued by the platform's auth
// layer. This engine only reads them; it never issues tokens.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the identity data available when minting a JWT.
type AccessTokenPayload struct {
	Username string
	IsAdmin  bool
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

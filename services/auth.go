package services

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried as custom claims on identity tokens
const (
	RoleAttorney = "attorney"
	RoleClient   = "client"
)

// TokenClaims are the custom claims attached to an identity token
type TokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenUser is the verified identity extracted from a bearer token
type TokenUser struct {
	UID   string
	Email string
	Role  string
}

// VerifyIDToken validates a bearer token and returns the identity it
// carries. Pure verification, no mutation. Expired, malformed, or
// wrongly-signed tokens fail.
func VerifyIDToken(tokenStr, secret string) (*TokenUser, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, fmt.Errorf("could not extract token claims")
	}

	return &TokenUser{
		UID:   claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// IsAttorney checks the attorney role claim plus the corporate email
// domain restriction
func IsAttorney(user *TokenUser, corporateDomain string) bool {
	if user == nil || user.Role != RoleAttorney {
		return false
	}
	return strings.HasSuffix(user.Email, corporateDomain)
}

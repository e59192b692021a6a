package models

import "github.com/golang-jwt/jwt/v5"

// JwtCustomClaims carries the identity the surrounding platform issues.
// This service only validates tokens; it never issues them.
type JwtCustomClaims struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Roles understood by the route guards.
const (
	RoleAdmin   = "Admin"
	RoleCarrier = "Carrier"
	RoleBroker  = "Broker"
)

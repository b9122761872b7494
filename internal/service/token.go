package service

import "github.com/golang-jwt/jwt/v5"

// StudentJWTClaims is the bearer token payload issued by the identity
// provider. The service only verifies; it never issues tokens.
type StudentJWTClaims struct {
	USN  string `json:"usn"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the signed identity record carried by the auth cookie.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Info converts claims back into the public identity shape.
func (c *SessionClaims) Info() UserInfo {
	return UserInfo{ID: c.UserID, Email: c.Email, Name: c.Name}
}

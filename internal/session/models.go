package session

import "github.com/golang-jwt/jwt/v5"

// Claims is the identity payload carried inside a session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// IssueRequest is the request payload for POST /jwt.
// Fields are signed as sent; no shape validation is applied.
type IssueRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Response is the body returned by the issue and revoke endpoints.
type Response struct {
	Success bool `json:"success"`
}

// Package api defines the request and response types of the hosted auth
// backend, shared between the client and tests.
package api

// TokenRequest is the body of a password-grant token request.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the body of a successful token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// User is the authenticated user as reported by the auth backend.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ErrorResponse is the body of a failed auth request.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Message     string `json:"msg"`
}

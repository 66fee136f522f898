package dto

import "github.com/golang-jwt/jwt/v5"

// MeResponse describes the caller for the auth-aware header
// @Description Current user
type MeResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// AuthClaims are the claims of the access tokens issued by the hosted auth
// backend. The subject is the user's UUID.
type AuthClaims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

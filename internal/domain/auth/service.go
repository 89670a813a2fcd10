package auth

import "context"

// AuthService issues access tokens for account credentials.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
}

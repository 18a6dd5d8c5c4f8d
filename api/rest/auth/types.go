package auth

import (
	"context"

	"codeberg.org/algopatterns/exceptionfilter/algopatterns/users"
)

// looks up the user a token is issued for
type UserFinder interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
}

// TokenRequest names the user to issue a token for
type TokenRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// AuthResponse returned after a token is issued
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

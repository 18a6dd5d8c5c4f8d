package users

import (
	"context"
	"time"

	"codeberg.org/algopatterns/exceptionfilter/algopatterns/users"
)

// the subset of the users repository the handlers need
type Store interface {
	Create(ctx context.Context, req users.CreateUserRequest) (*users.User, error)
	FindByID(ctx context.Context, userID string) (*users.User, error)
	Delete(ctx context.Context, userID string) error
}

// what anyone but the user themselves or an admin sees
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func publicView(user *users.User) PublicUser {
	return PublicUser{ID: user.ID, Name: user.Name, CreatedAt: user.CreatedAt}
}

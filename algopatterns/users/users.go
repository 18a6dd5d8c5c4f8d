package users

import (
	"context"
	"fmt"

	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// raised when a user acts on an account that is not theirs
var ErrPermissionDenied = errors.NewTagged(errors.TagPermissionDenied, "not allowed to modify this user")

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the users table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, querySchema); err != nil {
		return fmt.Errorf("failed to create users schema: %w", err)
	}

	return nil
}

// inserts a user. A taken email surfaces as the driver's unique violation.
func (r *Repository) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryCreate, req.Email, req.Name).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryFindByID, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	return &user, nil
}

// deletes a user by their ID
func (r *Repository) Delete(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, queryDelete, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}

	if tag.RowsAffected() == 0 {
		return errors.NewTagged(errors.TagEntityNotFound, "user "+userID+" not found")
	}

	return nil
}

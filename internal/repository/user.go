package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rhinowatch/rhino-watch-sa/internal/models"
	"github.com/rhinowatch/rhino-watch-sa/pkg/storage"
)

type UserRepository struct {
	db      *sql.DB
	dialect storage.Dialect
}

func NewUserRepository(db *sql.DB, dialect storage.Dialect) *UserRepository {
	return &UserRepository{
		db:      db,
		dialect: dialect,
	}
}

// GetByUsername returns the user with the given username, or ErrNotFound.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.dialect.Rebind(`SELECT id, username, email, password_hash, role, created_at FROM users WHERE username = ?`)

	var (
		user      models.User
		createdAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	user.CreatedAt = createdAt.Time
	return &user, nil
}

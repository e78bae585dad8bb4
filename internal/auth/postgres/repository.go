package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"audio-tour-service/internal/auth"
)

type Row interface {
	Scan(dest ...any) error
}

type DB interface {
	QueryRowContext(ctx context.Context, query string, args ...any) Row
}

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ auth.UserFinder = (*UserRepository)(nil)

const findUserByEmailSQL = `
SELECT id, email, name, role, is_active
FROM users
WHERE email = $1`

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	var (
		u    auth.User
		role string
	)
	err := r.db.QueryRowContext(ctx, findUserByEmailSQL, email).
		Scan(&u.ID, &u.Email, &u.Name, &role, &u.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	u.Role = auth.Role(role)
	return &u, nil
}

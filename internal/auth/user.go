package auth

import (
	"context"
	"errors"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrUserNotFound = errors.New("user not found")

// User is the authenticated principal stored in the request context.
type User struct {
	ID       int64
	Email    string
	Name     string
	Role     Role
	IsActive bool
}

// UserFinder resolves the token subject into a stored user.
type UserFinder interface {
	// FindUserByEmail returns ErrUserNotFound when no row matches.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}

type principalKey struct{}

// ContextWithPrincipal attaches u to ctx.
func ContextWithPrincipal(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, principalKey{}, u)
}

// PrincipalFromContext returns the user set by RequireRole, if any.
func PrincipalFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(principalKey{}).(*User)
	return u, ok && u != nil
}

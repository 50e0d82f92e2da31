package auth

import (
	"context"

	"github.com/hongminglow/driveops-be/internal/models"
)

// Permission is the set of roles allowed to call an operation.
type Permission []models.Role

var (
	AdminOnly     = Permission{models.RoleAdmin}
	DriverOnly    = Permission{models.RoleDriver}
	AdminOrDriver = Permission{models.RoleAdmin, models.RoleDriver}
	// AnyRole admits every authenticated caller.
	AnyRole = AdminOrDriver
)

// Allows reports whether role belongs to the permission set.
func (p Permission) Allows(role models.Role) bool {
	for _, r := range p {
		if r == role {
			return true
		}
	}
	return false
}

type identityKey struct{}

// WithIdentity attaches the authenticated caller to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller attached by WithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

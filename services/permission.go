package services

import (
	"context"
	"errors"

	"parcel-delivery/constants"
	"parcel-delivery/repository"
)

// PermissionService answers role questions from the stored user records.
type PermissionService struct {
	users repository.UserRepository
}

func NewPermissionService(users repository.UserRepository) *PermissionService {
	return &PermissionService{users: users}
}

// RoleOf returns the stored role for email, "user" when the field is unset,
// and repository.ErrNotFound when there is no such user.
func (ps *PermissionService) RoleOf(ctx context.Context, email string) (string, error) {
	u, err := ps.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u.Role == "" {
		return constants.RoleUser, nil
	}
	return u.Role, nil
}

// HasRole reports whether email has exactly role. Unknown users have no role.
func (ps *PermissionService) HasRole(ctx context.Context, email, role string) (bool, error) {
	stored, err := ps.RoleOf(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == role, nil
}

// IsAdmin checks if user has admin privileges
func (ps *PermissionService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return ps.HasRole(ctx, email, constants.RoleAdmin)
}

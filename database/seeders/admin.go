package seeders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcel-delivery/constants"
	"parcel-delivery/logger"
	"parcel-delivery/models/user"
	"parcel-delivery/repository"
)

// SeedAdmin promotes email to admin, creating the user when it does not exist yet.
func SeedAdmin(ctx context.Context, users repository.UserRepository, email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	_, err := users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		now := time.Now()
		if _, err := users.Create(ctx, &user.User{
			Email:     email,
			Role:      constants.RoleAdmin,
			CreatedAt: now,
			LastLogIn: now,
		}); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		logger.Success("Created admin user " + email)
		return nil
	case err != nil:
		return fmt.Errorf("find admin: %w", err)
	}

	if err := users.UpdateRoleByEmail(ctx, email, constants.RoleAdmin); err != nil {
		return fmt.Errorf("promote admin: %w", err)
	}
	logger.Success("Promoted " + email + " to admin")
	return nil
}

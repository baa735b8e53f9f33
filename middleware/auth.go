package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/constants"
	"parcel-delivery/httpServices/identity"
	"parcel-delivery/logger"
	"parcel-delivery/services"
	"parcel-delivery/types"
)

// UserKey is the fiber Locals key holding the verified *identity.Identity.
const UserKey = "user"

var roleDeniedMessages = map[string]string{
	constants.RoleAdmin: "Admin access required",
	constants.RoleRider: "Rider access required",
}

type Middleware struct {
	verifier    identity.Verifier
	permissions *services.PermissionService
}

func New(verifier identity.Verifier, permissions *services.PermissionService) *Middleware {
	return &Middleware{verifier: verifier, permissions: permissions}
}

// RequireAuth verifies the bearer token and stores the caller identity.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Authorization token missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid authorization header format",
				Status:  fiber.StatusUnauthorized,
			})
		}

		caller, err := m.verifier.Verify(c.UserContext(), tokenParts[1])
		if err != nil {
			logger.Warning("Token verification failed: " + err.Error())
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: "Forbidden access",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserKey, caller)
		return c.Next()
	}
}

// RequireRole must run after RequireAuth. It lets the request through only
// when the caller's stored role equals role.
func (m *Middleware) RequireRole(role string) fiber.Handler {
	denied, ok := roleDeniedMessages[role]
	if !ok {
		denied = "Forbidden access"
	}

	return func(c *fiber.Ctx) error {
		caller, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Unauthorized access",
				Status:  fiber.StatusUnauthorized,
			})
		}

		allowed, err := m.permissions.HasRole(c.UserContext(), caller.Email, role)
		if err != nil {
			logger.Error("Failed to look up caller role", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: err.Error(),
				Status:  fiber.StatusInternalServerError,
			})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: denied,
				Status:  fiber.StatusForbidden,
			})
		}
		return c.Next()
	}
}

func (m *Middleware) RequireAdmin() fiber.Handler {
	return m.RequireRole(constants.RoleAdmin)
}

func (m *Middleware) RequireRider() fiber.Handler {
	return m.RequireRole(constants.RoleRider)
}

// GetIdentity returns the caller stored by RequireAuth.
func GetIdentity(c *fiber.Ctx) (*identity.Identity, bool) {
	caller, ok := c.Locals(UserKey).(*identity.Identity)
	return caller, ok && caller != nil
}
